package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef-test"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(t *testing.T, cfg Config, clock *fakeClock) *Manager {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	m, err := NewManager(cfg, WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func TestNewManager_RejectsBadSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = NewManager(Config{Secret: "too-short"})
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestIssueToken_ZeroManager(t *testing.T) {
	var m Manager
	_, err := m.IssueToken("u1", "Admin")
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestIssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	m := newTestManager(t, Config{}, clock)

	tok, err := m.IssueToken("3f1c1d9e-0000-4000-8000-000000000001", "Reader")
	require.NoError(t, err)

	claims, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "3f1c1d9e-0000-4000-8000-000000000001", claims.UserID)
	assert.Equal(t, "Reader", claims.Role)
	assert.True(t, clock.t.Add(60*time.Minute).Equal(claims.ExpiresAt.Time))
	assert.Equal(t, 60*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, 60*time.Minute, TokenTTL)
}

func TestValidateToken_ExpiryWindow(t *testing.T) {
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	m := newTestManager(t, Config{}, clock)

	tok, err := m.IssueToken("u1", "Admin")
	require.NoError(t, err)

	clock.t = issued.Add(59 * time.Minute)
	_, err = m.ValidateToken(tok)
	assert.NoError(t, err, "token must be accepted at T+59m")

	clock.t = issued.Add(61 * time.Minute)
	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired, "token must be rejected at T+61m")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestManager(t, Config{}, clock)
	other := newTestManager(t, Config{Secret: "another-secret-another-secret-xyz"}, clock)

	tok, err := issuer.IssueToken("u1", "Admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	m := newTestManager(t, Config{}, &fakeClock{t: time.Now()})

	_, err := m.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestManager(t, Config{}, clock)

	claims := Claims{
		UserID: "u1",
		Role:   "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_IssuerAudience(t *testing.T) {
	clock := &fakeClock{t: time.Now()}

	issuing := newTestManager(t, Config{Issuer: "catalog", Audience: "catalog-clients"}, clock)
	tok, err := issuing.IssueToken("u1", "Admin")
	require.NoError(t, err)

	strict := newTestManager(t, Config{
		Issuer: "someone-else", Audience: "catalog-clients",
		ValidateIssuer: true, ValidateAudience: true,
	}, clock)
	_, err = strict.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// validation disabled: issuer mismatch is ignored
	lenient := newTestManager(t, Config{Issuer: "someone-else"}, clock)
	_, err = lenient.ValidateToken(tok)
	assert.NoError(t, err)

	matching := newTestManager(t, Config{
		Issuer: "catalog", Audience: "catalog-clients",
		ValidateIssuer: true, ValidateAudience: true,
	}, clock)
	_, err = matching.ValidateToken(tok)
	assert.NoError(t, err)
}
