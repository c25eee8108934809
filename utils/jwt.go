package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carry the resolved identity. Email is the token subject; UserID
// rides along so request handling never needs a user lookup per call.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret        []byte
	refreshSecret []byte
	expire        time.Duration
	refreshExpire time.Duration
}

func NewTokenManager(secret, refreshSecret string, expire, refreshExpire time.Duration) *TokenManager {
	return &TokenManager{
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		expire:        expire,
		refreshExpire: refreshExpire,
	}
}

func (m *TokenManager) GenerateToken(userID uint, email string) (string, error) {
	return m.sign(userID, email, "access", m.secret, m.expire)
}

func (m *TokenManager) GenerateRefreshToken(userID uint, email string) (string, error) {
	return m.sign(userID, email, "refresh", m.refreshSecret, m.refreshExpire)
}

func (m *TokenManager) sign(userID uint, email string, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) ParseToken(token string) (*Claims, error) {
	return m.parse(token, "access", m.secret)
}

func (m *TokenManager) ParseRefreshToken(token string) (*Claims, error) {
	return m.parse(token, "refresh", m.refreshSecret)
}

func (m *TokenManager) parse(token string, wantType string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
