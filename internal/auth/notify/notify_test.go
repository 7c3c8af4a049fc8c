package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/idgate/internal/auth/notify"
	"github.com/stretchr/testify/require"
)

func TestVerificationURL(t *testing.T) {
	tests := []struct {
		name     string
		frontend string
		token    string
		want     string
	}{
		{"plain", "https://app.example.com", "abc_DEF-123", "https://app.example.com/verify-email?token=abc_DEF-123"},
		{"trailing slash", "https://app.example.com/", "abc", "https://app.example.com/verify-email?token=abc"},
		{"escaped", "http://localhost:3000", "a+b/c", "http://localhost:3000/verify-email?token=a%2Bb%2Fc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, notify.VerificationURL(tt.frontend, tt.token))
		})
	}
}

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := notify.NewSMTPSender(notify.SMTPConfig{From: "noreply@example.com"}, "https://app.example.com")
	require.ErrorContains(t, err, "SMTP host is required")

	_, err = notify.NewSMTPSender(notify.SMTPConfig{Host: "smtp.example.com"}, "https://app.example.com")
	require.ErrorContains(t, err, "SMTP from address is required")

	s, err := notify.NewSMTPSender(notify.SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"}, "")
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestSMTPSender_InvalidRecipient(t *testing.T) {
	s, err := notify.NewSMTPSender(notify.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "noreply@example.com"}, "")
	require.NoError(t, err)

	err = s.SendTwoFactorCode(context.Background(), "not an address", "123456")
	require.ErrorContains(t, err, "to address")
}

func TestLogSender_NeverLogsSecrets(t *testing.T) {
	var buf bytes.Buffer
	sender := notify.LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	ctx := context.Background()

	require.NoError(t, sender.SendVerificationEmail(ctx, "a@example.com", "very-secret-token"))
	require.NoError(t, sender.SendTwoFactorCode(ctx, "a@example.com", "424242"))

	out := buf.String()
	require.Contains(t, out, "a@example.com")
	require.Contains(t, out, notify.SubjectVerification)
	require.Contains(t, out, notify.SubjectTwoFactor)
	require.NotContains(t, out, "very-secret-token")
	require.NotContains(t, out, "424242")
}
