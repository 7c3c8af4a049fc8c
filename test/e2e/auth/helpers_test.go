package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end tests run the service image next to a mailpit relay on a
 * private network. Verification links and two-factor codes are read back
 * from mailpit's API, the same way a user would read them from an inbox.
 */

const (
	testImageName = "idgate-test:latest"
	mailpitImage  = "axllent/mailpit:latest"
	mailpitAlias  = "mailpit"

	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	frontendURL   = "https://app.idgate.test"
)

var (
	tokenPattern = regexp.MustCompile(`verify-email\?token=(\S+)`)
	codePattern  = regexp.MustCompile(`\b(\d{6})\b`)
)

// TestMain builds the service image once before all tests and removes it
// afterwards. Without docker the suite is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not available, skipping end-to-end tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building idgate Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up idgate Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// testStack is one running service plus the mailbox it sends to.
type testStack struct {
	client  *authsdk.SDKClient
	baseURL string
	mailAPI string
}

// setupStack starts mailpit and the service on a fresh network.
func setupStack(t *testing.T) *testStack {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := nw.Remove(ctx); err != nil {
			t.Logf("failed to remove network: %v", err)
		}
	})

	mailpit, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          mailpitImage,
			ExposedPorts:   []string{"8025/tcp"},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {mailpitAlias}},
			WaitingFor: wait.ForHTTP("/api/v1/messages").
				WithPort("8025/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	terminateOnCleanup(t, mailpit)

	service, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Networks:     []string{nw.Name},
			Env: map[string]string{
				"AUTH_DATABASE_FILE":         "/data/auth.db",
				"AUTH_PEPPER_FILE":           "/data/pepper",
				"AUTH_ISSUER":                e2eIssuer,
				"AUTH_ALGORITHM":             "EdDSA",
				"AUTH_NUM_KEYS":              "1",
				"AUTH_BOOTSTRAP_ADMIN_EMAIL": adminEmail,
				"FRONTEND_URL":               frontendURL,
				"MAIL_HOST":                  mailpitAlias,
				"MAIL_PORT":                  "1025",
				"MAIL_FROM":                  "noreply@idgate.test",
				"MAIL_TLS":                   "false",
				"ENV":                        "test",
				"LOG_LEVEL":                  "info",
				"LOG_FORMAT":                 "json",
			},
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	terminateOnCleanup(t, service)

	return &testStack{
		client:  authsdk.NewSDKClient(endpoint(t, service, "8080")),
		baseURL: endpoint(t, service, "8080"),
		mailAPI: endpoint(t, mailpit, "8025"),
	}
}

func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
}

func endpoint(t *testing.T, c testcontainers.Container, port nat.Port) string {
	t.Helper()
	ctx := context.Background()

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mapped.Port())
}

type mailpitSummary struct {
	ID      string `json:"ID"`
	Subject string `json:"Subject"`
	To      []struct {
		Address string `json:"Address"`
	} `json:"To"`
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url) // #nosec G107 - test container URL
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// waitForMail returns the text body of the newest message to address with
// the given subject, polling until count such messages have arrived.
func (s *testStack) waitForMail(t *testing.T, address, subject string, count int) string {
	t.Helper()

	var matches []mailpitSummary
	require.Eventually(t, func() bool {
		var list struct {
			Messages []mailpitSummary `json:"messages"`
		}
		getJSON(t, s.mailAPI+"/api/v1/messages", &list)

		matches = matches[:0]
		for _, m := range list.Messages {
			if m.Subject == subject && len(m.To) == 1 && m.To[0].Address == address {
				matches = append(matches, m)
			}
		}
		return len(matches) >= count
	}, 15*time.Second, 250*time.Millisecond, "no %q mail for %s", subject, address)

	// Newest first.
	var msg struct {
		Text string `json:"Text"`
	}
	getJSON(t, s.mailAPI+"/api/v1/message/"+matches[0].ID, &msg)
	return msg.Text
}

// verificationToken pulls the token out of the newest verification link.
func (s *testStack) verificationToken(t *testing.T, address string, count int) string {
	t.Helper()
	body := s.waitForMail(t, address, "Email Verification", count)

	m := tokenPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "no verification link in %q", body)
	token, err := url.QueryUnescape(m[1])
	require.NoError(t, err)
	return token
}

// twoFactorCode pulls the code out of the newest two-factor mail.
func (s *testStack) twoFactorCode(t *testing.T, address string, count int) string {
	t.Helper()
	body := s.waitForMail(t, address, "Two-Factor Authentication Code", count)

	m := codePattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "no code in %q", body)
	return m[1]
}

// registerVerified registers email and follows the emailed link.
func (s *testStack) registerVerified(t *testing.T, email, password string) {
	t.Helper()
	ctx := t.Context()

	require.NoError(t, s.client.Register(ctx, email, password))
	require.NoError(t, s.client.VerifyEmail(ctx, s.verificationToken(t, email, 1)))
}

// login returns a full session for a verified identity without 2FA.
func (s *testStack) login(t *testing.T, email, password string) *authsdk.Session {
	t.Helper()

	session, err := s.client.Login(t.Context(), email, password)
	require.NoError(t, err, "Login should succeed")
	require.False(t, session.RequiresTwoFactor())
	return session
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
