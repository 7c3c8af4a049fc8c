// Package notify delivers verification links and two-factor codes.
package notify

import (
	"net/url"
	"strings"
	"text/template"
)

const (
	SubjectVerification = "Email Verification"
	SubjectTwoFactor    = "Two-Factor Authentication Code"
)

var (
	verificationBody = template.Must(template.New("verification").Parse(`Hello {{.Email}},

Confirm your email address by opening the link below:

{{.URL}}

The link expires in 24 hours. If you did not create an account you can ignore this message.
`))

	twoFactorBody = template.Must(template.New("two-factor").Parse(`Hello {{.Email}},

Your sign-in code is {{.Code}}

It expires in 5 minutes.
`))
)

type verificationData struct {
	Email string
	URL   string
}

type twoFactorData struct {
	Email string
	Code  string
}

// VerificationURL builds the frontend link that carries token.
func VerificationURL(frontendURL, token string) string {
	return strings.TrimSuffix(frontendURL, "/") + "/verify-email?token=" + url.QueryEscape(token)
}
