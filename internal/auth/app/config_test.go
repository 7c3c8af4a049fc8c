package app

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func parseFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseFrom(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "idgate", cfg.Issuer)
	require.Equal(t, "EdDSA", cfg.Algorithm)
	require.Equal(t, 3, cfg.NumKeys)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Empty(t, cfg.Mail.Host)
	require.Equal(t, 587, cfg.Mail.Port)
	require.True(t, cfg.Mail.TLS)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := parseFrom(map[string]string{
		"AUTH_ISSUER":                "https://id.example.com",
		"AUTH_ALGORITHM":             "ES256",
		"AUTH_NUM_KEYS":              "1",
		"AUTH_TOKEN_TTL":             "30m",
		"AUTH_BOOTSTRAP_ADMIN_EMAIL": "root@example.com",
		"FRONTEND_URL":               "https://app.example.com",
		"MAIL_HOST":                  "smtp.example.com",
		"MAIL_PORT":                  "465",
		"MAIL_USER":                  "mailer",
		"MAIL_PASSWORD":              "hunter2",
		"MAIL_FROM":                  "no-reply@example.com",
		"MAIL_TLS":                   "false",
		"LOG_FORMAT":                 "text",
	})
	require.NoError(t, err)

	require.Equal(t, "https://id.example.com", cfg.Issuer)
	require.Equal(t, "ES256", cfg.Algorithm)
	require.Equal(t, 1, cfg.NumKeys)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, "root@example.com", cfg.BootstrapAdminEmail)
	require.Equal(t, "https://app.example.com", cfg.FrontendURL)
	require.Equal(t, MailConfig{
		Host:     "smtp.example.com",
		Port:     465,
		User:     "mailer",
		Password: "hunter2",
		From:     "no-reply@example.com",
		FromName: "idgate",
		TLS:      false,
	}, cfg.Mail)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"unknown algorithm", map[string]string{"AUTH_ALGORITHM": "RS256"}, "AUTH_ALGORITHM"},
		{"too many keys", map[string]string{"AUTH_NUM_KEYS": "11"}, "AUTH_NUM_KEYS"},
		{"zero ttl", map[string]string{"AUTH_TOKEN_TTL": "0s"}, "AUTH_TOKEN_TTL"},
		{"bad duration", map[string]string{"AUTH_TOKEN_TTL": "soon"}, "parse env"},
		{"bad port", map[string]string{"PORT": "http"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFrom(tt.environ)
			require.ErrorContains(t, err, tt.want)
		})
	}
}
