package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tranyenminhbd/docuflow/internal/permission"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User is the session-facing identity: enough to authorize requests, no
// management fields.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DepartmentID string    `json:"department_id"`
	RoleID       string    `json:"role_id"`
	Status       string    `json:"status"`
	LastLogin    time.Time `json:"last_login"`
}

func (u *User) IsActiveUser() bool {
	return u.Status == UserStatusActive
}

// Session is the authenticated caller attached to the request context. Role
// is nil when the user's role id no longer resolves; such a session can
// still browse the public reader but holds no permissions.
type Session struct {
	User *User
	Role *permission.Role
}

func (s *Session) RoleOrNil() *permission.Role {
	if s == nil {
		return nil
	}
	return s.Role
}

func (s *Session) UserName() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Name
}

type ctxKey string

const ContextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	RestoreSession(userID string) (*Session, error)
	Logout(session *Session)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	UpdateLastLogin(id string, at time.Time) error
}

// RoleResolver resolves a role id against the live role collection. A
// dangling id resolves to (nil, nil); role references are soft.
type RoleResolver interface {
	GetByID(id string) (*permission.Role, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult carries the authenticated user alongside the issued tokens so
// the client can render the session immediately.
type LoginResult struct {
	User   *User      `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrUserNotFound = errors.New("user not found")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
