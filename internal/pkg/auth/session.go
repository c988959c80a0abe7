package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session token errors
var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// SessionConfig defines how session tokens are signed
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// SessionManager issues and verifies the signed token stored in the session cookie
type SessionManager struct {
	config SessionConfig
	now    func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(config SessionConfig) *SessionManager {
	return &SessionManager{
		config: config,
		now:    time.Now,
	}
}

// SessionClaims is the payload of a session token
type SessionClaims struct {
	UserID   int64  `json:"uid"`
	UserName string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TTL returns the configured session lifetime
func (m *SessionManager) TTL() time.Duration {
	return m.config.TTL
}

// Issue signs a new session token for the given user
func (m *SessionManager) Issue(userID int64, name, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.TTL)

	claims := &SessionClaims{
		UserID:   userID,
		UserName: name,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies a session token and returns its claims
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.SecretKey), nil
	}, jwt.WithIssuer(m.config.Issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
