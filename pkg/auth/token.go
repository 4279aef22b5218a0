package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by both access and refresh tokens:
// user id in Subject, plus the role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is what register/login/refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager issues and verifies the access/refresh token pair.
// Access and refresh tokens are signed with separate secrets so a
// leaked refresh secret cannot mint access tokens and vice versa.
type TokenManager interface {
	GeneratePair(userID, role string) (TokenPair, error)
	VerifyAccess(token string) (*Claims, error)
	VerifyRefresh(token string) (*Claims, error)
}

type jwtManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (TokenManager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt secrets cannot be empty")
	}
	return &jwtManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (m *jwtManager) sign(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *jwtManager) GeneratePair(userID, role string) (TokenPair, error) {
	access, err := m.sign(userID, role, m.accessSecret, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(userID, role, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m *jwtManager) VerifyAccess(token string) (*Claims, error) {
	return verify(token, m.accessSecret)
}

func (m *jwtManager) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}
