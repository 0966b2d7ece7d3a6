package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL - token sống đúng 60 phút, không có refresh và không cấu hình được
const TokenTTL = 60 * time.Minute

// MinSecretLength is the minimum HS256 key size in bytes (256 bits).
const MinSecretLength = 32

var (
	ErrInvalidSecret = errors.New("jwt signing secret is missing or shorter than 32 bytes")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token has expired")
)

// Claims represents JWT claims structure
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds the signing key and the optional issuer/audience checks.
type Config struct {
	Secret           string
	Issuer           string
	Audience         string
	ValidateIssuer   bool
	ValidateAudience bool
}

// Manager handles JWT operations. It is immutable after NewManager and is
// shared read-only by all requests.
type Manager struct {
	secret []byte
	cfg    Config
	now    func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source used to issue and validate tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates new JWT manager.
// Returns ErrInvalidSecret when the secret is absent or too short.
func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrInvalidSecret
	}

	m := &Manager{
		secret: []byte(cfg.Secret),
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// IssueToken builds and signs a token carrying the subject id and role.
// Expiry is issue time + TokenTTL.
func (m *Manager) IssueToken(subjectID, role string) (string, error) {
	if len(m.secret) < MinSecretLength {
		return "", ErrInvalidSecret
	}

	now := m.now()
	claims := Claims{
		UserID: subjectID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if m.cfg.Issuer != "" {
		claims.Issuer = m.cfg.Issuer
	}
	if m.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.cfg.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates and parses token.
// Signature, algorithm and expiry are always checked; issuer and audience only
// when enabled in Config.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.ValidateIssuer && m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	if m.cfg.ValidateAudience && m.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.cfg.Audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
