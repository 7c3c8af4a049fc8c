package notify

import (
	"context"
	"log/slog"
)

// LogSender records that a message would have been sent. It is used when
// no SMTP relay is configured. The secret itself is never written.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) SendVerificationEmail(ctx context.Context, to, _ string) error {
	s.Logger.InfoContext(ctx, "verification email not sent: no mail relay configured",
		"to", to, "subject", SubjectVerification)
	return nil
}

func (s LogSender) SendTwoFactorCode(ctx context.Context, to, _ string) error {
	s.Logger.InfoContext(ctx, "two-factor code not sent: no mail relay configured",
		"to", to, "subject", SubjectTwoFactor)
	return nil
}
