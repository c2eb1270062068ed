package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		Secret:        "cli-secret",
		TokenLifetime: time.Hour,
		BcryptCost:    4,
	}
}

func TestHashPasswordCommand_Stdin(t *testing.T) {
	var out bytes.Buffer
	cmd := &HashPasswordCommand{In: strings.NewReader("secret1\n"), Out: &out}
	require.NoError(t, cmd.ParseFlags([]string{"-stdin", "-cost", "4"}))

	require.NoError(t, cmd.Run())

	hash := strings.TrimSpace(out.String())
	ok, err := auth.CheckPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
}

func TestHashPasswordCommand_Prompt(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("prompted"), nil }

	var out bytes.Buffer
	cmd := &HashPasswordCommand{Out: &out}
	require.NoError(t, cmd.ParseFlags([]string{"-cost", "4"}))

	require.NoError(t, cmd.Run())

	ok, err := auth.CheckPassword("prompted", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPasswordCommand_Errors(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a terminal") }

	cmd := &HashPasswordCommand{Out: &bytes.Buffer{}, Cost: 4}
	assert.Error(t, cmd.Run())

	cmd = &HashPasswordCommand{In: strings.NewReader("\n"), Out: &bytes.Buffer{}, Cost: 4, Stdin: true}
	assert.Error(t, cmd.Run())

	cmd = &HashPasswordCommand{In: strings.NewReader("secret1\n"), Out: &bytes.Buffer{}, Cost: 99, Stdin: true}
	assert.ErrorIs(t, cmd.Run(), auth.ErrHashingFailure)
}

func TestIssueThenVerifyToken(t *testing.T) {
	var issued bytes.Buffer
	issue := NewIssueTokenCommand(testAuthConfig())
	issue.Out = &issued
	require.NoError(t, issue.ParseFlags([]string{"-sub", "user-1", "-username", "alice", "-ttl", "10m"}))
	require.NoError(t, issue.Run())

	var verified bytes.Buffer
	verify := NewVerifyTokenCommand(testAuthConfig())
	verify.Out = &verified
	verify.In = strings.NewReader(issued.String())
	require.NoError(t, verify.ParseFlags([]string{"-token", "-"}))
	require.NoError(t, verify.Run())

	var claims verifiedClaims
	require.NoError(t, json.Unmarshal(verified.Bytes(), &claims))
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, int64(600), claims.ExpiresAt-claims.IssuedAt)
}

func TestIssueTokenCommand_RequiresSubject(t *testing.T) {
	cmd := NewIssueTokenCommand(testAuthConfig())

	assert.Error(t, cmd.ParseFlags(nil))
}

func TestIssueTokenCommand_RequiresSecret(t *testing.T) {
	cmd := NewIssueTokenCommand(config.Auth{TokenLifetime: time.Hour})
	cmd.Out = &bytes.Buffer{}
	require.NoError(t, cmd.ParseFlags([]string{"-sub", "user-1"}))

	assert.Error(t, cmd.Run())
}

func TestVerifyTokenCommand_ReportsFailureKind(t *testing.T) {
	foreign, err := auth.IssueToken(auth.NewClaims("user-1", "alice", time.Now(), time.Hour), []byte("someone-else"))
	require.NoError(t, err)
	expired, err := auth.IssueToken(auth.NewClaims("user-1", "alice", time.Now().Add(-2*time.Hour), time.Hour), []byte("cli-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		kind  error
		text  string
	}{
		{name: "garbage", token: "garbage", kind: auth.ErrMalformedToken, text: "malformed"},
		{name: "foreign secret", token: foreign, kind: auth.ErrInvalidSignature, text: "invalid signature"},
		{name: "expired", token: expired, kind: auth.ErrTokenExpired, text: "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVerifyTokenCommand(testAuthConfig())
			cmd.Out = &bytes.Buffer{}
			require.NoError(t, cmd.ParseFlags([]string{"-token", tt.token}))

			err := cmd.Run()

			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.text)
		})
	}
}
