package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/models"
)

// ── fixtures ──

type fakeServer struct {
	*httptest.Server
	subscription models.SubscriptionType
	revoked      atomic.Int32
	patched      atomic.Int32
}

func newFakeServer(t *testing.T, subscription models.SubscriptionType) *fakeServer {
	t.Helper()

	fs := &fakeServer{subscription: subscription}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.User{
			ID:           "user-1",
			Email:        "user@example.com",
			Salt:         base64.StdEncoding.EncodeToString([]byte("0123456789abcdef")),
			Subscription: models.Subscription{Type: fs.subscription},
		})
	})
	mux.HandleFunc("PATCH /users", func(w http.ResponseWriter, _ *http.Request) {
		fs.patched.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /connect/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Token{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
			Scope:        "notesnook.sync offline_access",
			ExpiresIn:    3600,
		})
	})
	mux.HandleFunc("POST /connect/revocation", func(w http.ResponseWriter, _ *http.Request) {
		fs.revoked.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

// setupEnv points the CLI at srv and a fresh database with cheap KDF costs.
func setupEnv(t *testing.T, srv *fakeServer) {
	t.Helper()

	t.Setenv("NO_COLOR", "1")
	t.Setenv("ADAPTER_AUTH_HOST", srv.URL)
	t.Setenv("ADAPTER_API_HOST", srv.URL)
	t.Setenv("STORAGE_DB_DATABASE_URI", filepath.Join(t.TempDir(), "notevault.db"))
	t.Setenv("SECURITY_ARGON_TIME", "1")
	t.Setenv("SECURITY_ARGON_MEMORY", "8192")
	t.Setenv("SECURITY_ARGON_THREADS", "1")
}

type result struct {
	stdout  string
	stderr  string
	copied  string
	prompts []string
	err     error
}

// run executes one command line in a fresh CLI, like a new process would.
// answers are handed out to password prompts in order.
func run(t *testing.T, stdin string, answers []string, args ...string) result {
	t.Helper()

	var (
		stdout, stderr bytes.Buffer
		res            result
	)
	reader := func(prompt string) (string, error) {
		res.prompts = append(res.prompts, prompt)
		if len(answers) == 0 {
			return "", ErrNoTerminal
		}
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}

	cli := NewCLI(logger.Nop(),
		WithIO(strings.NewReader(stdin), &stdout, &stderr),
		WithPasswordReader(reader),
		WithClipboard(func(s string) error {
			res.copied = s
			return nil
		}),
		WithBuildInfo(models.NewBuildInfo("1.2.3", "", "")),
	)

	res.err = cli.Execute(context.Background(), args)
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

func signIn(t *testing.T) {
	t.Helper()
	res := run(t, "", nil, "token", "set",
		"--access", "access-1",
		"--refresh", "refresh-1",
		"--scope", "notesnook.sync offline_access",
		"--expires-in", "3600",
	)
	require.NoError(t, res.err, res.stderr)
}

// ── vault ──

func TestCLI_VaultLifecycle(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	res := run(t, "", nil, "vault", "create", "--password", "abc123")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "✓ Vault created")

	res = run(t, "<p>secret</p>", nil, "note", "put", "n1")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "", nil, "vault", "add", "n1", "-p", "abc123")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Locked 'n1'")

	res = run(t, "", nil, "note", "show", "n1")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "secret")
	assert.Contains(t, res.stdout, `"cipher"`)
	assert.Contains(t, res.stderr, "(locked)")

	res = run(t, "", nil, "vault", "open", "n1", "-p", "abc123")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "<p>secret</p>\n", res.stdout)

	res = run(t, "", nil, "vault", "status")
	require.NoError(t, res.err)
	assert.Equal(t, "Vault locked, 1 locked notes\n", res.stdout)

	res = run(t, "", nil, "vault", "remove", "n1", "-p", "abc123")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "", nil, "note", "show", "n1")
	require.NoError(t, res.err)
	assert.Equal(t, "<p>secret</p>\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestCLI_VaultOpen_WrongPassword(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	require.NoError(t, run(t, "", nil, "vault", "create", "-p", "abc123").err)
	require.NoError(t, run(t, "<p>x</p>", nil, "note", "put", "n1").err)
	require.NoError(t, run(t, "", nil, "vault", "add", "n1", "-p", "abc123").err)

	res := run(t, "", nil, "vault", "open", "n1", "-p", "nope")

	require.ErrorIs(t, res.err, service.ErrWrongPassword)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "✗ wrong vault password")
}

func TestCLI_VaultOpen_Copy(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	require.NoError(t, run(t, "", nil, "vault", "create", "-p", "abc123").err)
	require.NoError(t, run(t, "<p>pin 1234</p>", nil, "note", "put", "n1").err)
	require.NoError(t, run(t, "", nil, "vault", "add", "n1", "-p", "abc123").err)

	res := run(t, "", []string{"abc123"}, "vault", "open", "n1", "--copy")

	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "<p>pin 1234</p>", res.copied)
	assert.NotContains(t, res.stdout, "pin 1234")
	assert.Equal(t, []string{"Enter " + vaultPasswordPrompt}, res.prompts)
}

func TestCLI_VaultCreate_Prompts(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		wantErr error
		wantOut string
	}{
		{
			name:    "confirmed",
			answers: []string{"abc123", "abc123"},
			wantOut: "✓ Vault created",
		},
		{
			name:    "mismatch",
			answers: []string{"abc123", "abc124"},
			wantErr: ErrPasswordMismatch,
		},
		{
			name:    "no terminal",
			answers: nil,
			wantErr: ErrNoTerminal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeServer(t, models.SubscriptionPremium)
			setupEnv(t, srv)
			signIn(t)

			res := run(t, "", tt.answers, "vault", "create")

			if tt.wantErr != nil {
				require.ErrorIs(t, res.err, tt.wantErr)
				return
			}
			require.NoError(t, res.err, res.stderr)
			assert.Contains(t, res.stdout, tt.wantOut)
		})
	}
}

func TestCLI_VaultAdd_NoVault(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)
	require.NoError(t, run(t, "<p>x</p>", nil, "note", "put", "n1").err)

	res := run(t, "", nil, "vault", "add", "n1", "-p", "abc123")

	require.ErrorIs(t, res.err, service.ErrNoVault)
	assert.Contains(t, res.stderr, "✗ no vault exists yet")
	assert.Contains(t, res.stderr, "→ Try `notevault vault create`")
}

func TestCLI_VaultCreate_NotPremium(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionBasic)
	setupEnv(t, srv)
	signIn(t)

	res := run(t, "", nil, "vault", "create", "-p", "abc123")

	require.ErrorIs(t, res.err, service.ErrPremiumRequired)
	assert.Contains(t, res.stderr, "premium subscription")

	res = run(t, "", nil, "vault", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No vault")
}

func TestCLI_VaultSave_And_ChangePassword(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	require.NoError(t, run(t, "", nil, "vault", "create", "-p", "old").err)
	require.NoError(t, run(t, "<p>v1</p>", nil, "note", "put", "n1").err)
	require.NoError(t, run(t, "", nil, "vault", "add", "n1", "-p", "old").err)

	res := run(t, "<p>v2</p>", nil, "vault", "save", "n1", "-p", "old")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "", nil, "vault", "change-password", "--old", "old", "--new", "new")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "", nil, "vault", "open", "n1", "-p", "old")
	require.ErrorIs(t, res.err, service.ErrWrongPassword)

	res = run(t, "", nil, "vault", "open", "n1", "-p", "new")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "<p>v2</p>\n", res.stdout)
}

func TestCLI_VaultDelete(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	require.NoError(t, run(t, "", nil, "vault", "create", "-p", "abc123").err)
	require.NoError(t, run(t, "<p>x</p>", nil, "note", "put", "n1").err)
	require.NoError(t, run(t, "", nil, "vault", "add", "n1", "-p", "abc123").err)

	res := run(t, "", nil, "vault", "delete", "--all-notes")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Vault and locked notes deleted")

	res = run(t, "", nil, "note", "show", "n1")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "✗ note not found")
}

// ── note ──

func TestCLI_NotePut_Locked(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	require.NoError(t, run(t, "", nil, "vault", "create", "-p", "abc123").err)
	require.NoError(t, run(t, "<p>x</p>", nil, "note", "put", "n1").err)
	require.NoError(t, run(t, "", nil, "vault", "add", "n1", "-p", "abc123").err)

	res := run(t, "<p>overwrite</p>", nil, "note", "put", "n1")

	require.ErrorIs(t, res.err, ErrNoteLocked)
}

// ── token ──

func TestCLI_Token(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)

	res := run(t, "", nil, "token", "show")
	require.ErrorIs(t, res.err, ErrNotSignedIn)
	assert.Contains(t, res.stderr, "✗ not signed in")
	assert.Contains(t, res.stderr, "`notevault token set`")

	res = run(t, `{"access_token":"a","refresh_token":"r","scope":"notesnook.sync offline_access","expires_in":60}`, nil,
		"token", "set", "--stdin")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "", nil, "token", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Token valid")
	assert.Contains(t, res.stdout, "Refreshable: true")

	res = run(t, "", nil, "token", "refresh")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "✓ Token refreshed")

	res = run(t, "", nil, "token", "revoke")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, int32(1), srv.revoked.Load())

	res = run(t, "", nil, "token", "show")
	require.ErrorIs(t, res.err, ErrNotSignedIn)
}

func TestCLI_TokenSet_RequiresAccessToken(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)

	res := run(t, "", nil, "token", "set", "--refresh", "r")

	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "access token is required")
}

// ── account ──

func TestCLI_Account(t *testing.T) {
	srv := newFakeServer(t, models.SubscriptionPremium)
	setupEnv(t, srv)
	signIn(t)

	res := run(t, "", nil, "account", "fetch")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Account 'user@example.com'")
	assert.Contains(t, res.stdout, "Plan: premium")

	res = run(t, "", nil, "account", "key", "attachmentsKey")
	require.ErrorIs(t, res.err, service.ErrNoMasterKey)
	assert.Contains(t, res.stderr, "`pass --password`")

	res = run(t, "", []string{"hunter2"}, "account", "key", "inboxKeys")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "'inboxKeys' (asymmetric)")
	assert.Contains(t, res.stdout, "Public key: ")
	assert.Equal(t, int32(1), srv.patched.Load())

	res = run(t, "", nil, "account", "rekey", "--old", "hunter2", "--new", "hunter3")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, int32(2), srv.patched.Load())

	res = run(t, "", nil, "account", "logout")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, int32(1), srv.revoked.Load())

	res = run(t, "", nil, "token", "show")
	require.ErrorIs(t, res.err, ErrNotSignedIn)
}

// ── root ──

func TestCLI_Version(t *testing.T) {
	res := run(t, "", nil, "--version")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1.2.3 (built N/A, commit N/A)")
}

func TestCLI_InvalidConfig(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("STORAGE_KV_BACKEND", "etcd")

	res := run(t, "", nil, "vault", "status")

	require.Error(t, res.err)
	assert.True(t, strings.HasPrefix(res.stderr, "✗ load config"), res.stderr)
	assert.False(t, errors.Is(res.err, service.ErrNoVault))
}
