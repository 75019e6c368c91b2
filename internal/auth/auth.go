// Package auth issues and verifies the JWT pairs used by the API. Access
// tokens carry the caller identity; refresh tokens carry the same identity
// plus a unique jti and a longer lifetime, and can only be spent on the
// refresh endpoint.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jadranPTI/todo-list-project/internal/model"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token not valid for this operation")
)

// Manager signs and parses tokens with a single HS256 secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret []byte, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// TokenPair is the response of the token-obtain endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssuePair mints an access and a refresh token for the user.
func (m *Manager) IssuePair(u model.User) (TokenPair, error) {
	access, err := m.sign(u, typeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(u, typeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token from the
// identity claims it carries. Access tokens are rejected here.
func (m *Manager) Refresh(refreshToken string) (string, error) {
	caller, typ, err := m.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if typ != typeRefresh {
		return "", ErrWrongTokenUse
	}
	return m.sign(model.User{ID: caller.ID, Username: caller.Username, IsAdmin: caller.IsAdmin},
		typeAccess, m.accessTTL)
}

func (m *Manager) sign(u model.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = strconv.FormatInt(u.ID, 10)
	claims["user_id"] = u.ID
	claims["username"] = u.Username
	claims["is_admin"] = u.IsAdmin
	claims["typ"] = typ
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	if typ == typeRefresh {
		claims["jti"] = uuid.NewString()
	}
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (m *Manager) parse(raw string) (model.Caller, string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Caller{}, "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Caller{}, "", ErrInvalidToken
	}
	caller, err := CallerFromClaims(claims)
	if err != nil {
		return model.Caller{}, "", err
	}
	typ, _ := claims["typ"].(string)
	return caller, typ, nil
}

// CallerFromClaims rebuilds the request identity from decoded claims.
// Numeric claims come back as float64 after JSON decoding.
func CallerFromClaims(claims jwt.MapClaims) (model.Caller, error) {
	id, ok := claims["user_id"].(float64)
	if !ok {
		return model.Caller{}, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return model.Caller{}, ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return model.Caller{ID: int64(id), Username: username, IsAdmin: isAdmin}, nil
}

// IsAccess reports whether decoded claims belong to an access token. The
// protected routes refuse refresh tokens.
func IsAccess(claims jwt.MapClaims) bool {
	typ, _ := claims["typ"].(string)
	return typ == typeAccess
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
