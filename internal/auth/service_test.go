package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/authkeeper/internal/config"
	"github.com/mrlokans/authkeeper/internal/entities"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		Secret:            "test-secret",
		TokenLifetime:     time.Hour,
		BcryptCost:        4, // Low cost for faster tests
		ProtectedPrefixes: []string{"/api/profile", "/api/protected"},
	}
}

// fakeClock is a settable time source shared with a Service.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestService_PasswordRoundTrip(t *testing.T) {
	svc := NewService(testAuthConfig())

	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword("secret2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_HashPasswordUsesConfiguredCost(t *testing.T) {
	cfg := testAuthConfig()
	cfg.BcryptCost = 40
	svc := NewService(cfg)

	_, err := svc.HashPassword("secret1")

	assert.ErrorIs(t, err, ErrHashingFailure)
}

func TestService_HashObserver(t *testing.T) {
	var ops []string
	svc := NewService(testAuthConfig(), WithHashObserver(func(op string, elapsed time.Duration) {
		ops = append(ops, op)
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	}))

	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)
	_, err = svc.VerifyPassword("secret1", hash)
	require.NoError(t, err)

	assert.Equal(t, []string{HashOperationHash, HashOperationVerify}, ops)
}

func TestService_IssueAndVerifyToken(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := NewService(testAuthConfig(), WithClock(clock.Now))
	user := &entities.User{ID: "7d3c3b5e-1111-4a57-9d0c-2f6f3c7e9a11", Username: "alice"}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, clock.Now().Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.Now().Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	subject, err := svc.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestService_VerifyTokenExpires(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenLifetime = time.Second
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := NewService(cfg, WithClock(clock.Now))

	token, err := svc.IssueToken(&entities.User{ID: "id", Username: "alice"})
	require.NoError(t, err)

	clock.Advance(1500 * time.Millisecond)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.ExtractSubject(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_VerifyTokenExpiresInRealTime(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps past token expiry")
	}

	cfg := testAuthConfig()
	cfg.TokenLifetime = time.Second
	svc := NewService(cfg)

	token, err := svc.IssueToken(&entities.User{ID: "id", Username: "alice"})
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_VerifyTokenFromOtherSecret(t *testing.T) {
	issuer := NewService(testAuthConfig())
	cfg := testAuthConfig()
	cfg.Secret = "rotated-secret"
	verifier := NewService(cfg)

	token, err := issuer.IssueToken(&entities.User{ID: "id", Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestService_ConcurrentUse(t *testing.T) {
	svc := NewService(testAuthConfig())
	user := &entities.User{ID: "id", Username: "alice"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := svc.IssueToken(user)
			if !assert.NoError(t, err) {
				return
			}
			subject, err := svc.ExtractSubject(token)
			assert.NoError(t, err)
			assert.Equal(t, "id", subject)
		}()
	}
	wg.Wait()
}
