// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"webstore/internal/domain"

	"go.uber.org/zap"
)

// User-facing reasons returned by the auth use cases.
const (
	MsgEmptyFields    = "Validation failed - some fields were empty"
	MsgBadCredentials = "Credentials are not good - either email or password is not correct"
)

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// AuthService composes the user registry and the session manager.
type AuthService struct {
	users    *UserService
	sessions *SessionService
	log      *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users *UserService, sessions *SessionService, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Signup registers a new account. All fields are required.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (domain.User, error) {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return domain.User{}, domain.Errorf(domain.ErrValidation, MsgEmptyFields)
	}
	return s.users.AddUser(ctx, req.Email, req.FirstName, req.LastName, req.Password)
}

// Login checks credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.Errorf(domain.ErrValidation, MsgEmptyFields)
	}
	if !s.users.CheckCredentials(ctx, email, password) {
		s.log.Info("login rejected", zap.String("email", email))
		return "", domain.Errorf(domain.ErrUnauthenticated, MsgBadCredentials)
	}
	return s.sessions.CreateToken(ctx, email)
}

// Logout invalidates the presented token.
func (s *AuthService) Logout(ctx context.Context, presented string) error {
	return s.sessions.RevokeToken(ctx, presented)
}

// Authenticate returns the subject of a presented token.
func (s *AuthService) Authenticate(ctx context.Context, presented string) (string, error) {
	return s.sessions.ValidateToken(ctx, presented)
}

// LoginWithSSO mints a token for an identity already verified by an
// external provider. Unknown emails are provisioned with a random password.
func (s *AuthService) LoginWithSSO(ctx context.Context, email, firstName, lastName string) (string, error) {
	if email == "" {
		return "", domain.Errorf(domain.ErrValidation, "SSO identity has no email")
	}
	if !s.users.EmailExists(ctx, email) {
		pw, err := randomPassword()
		if err != nil {
			return "", err
		}
		if firstName == "" {
			firstName = email
		}
		if lastName == "" {
			lastName = "-"
		}
		_, err = s.users.AddUser(ctx, email, firstName, lastName, pw)
		// A concurrent callback may have provisioned the same email.
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		if err == nil {
			s.log.Info("sso user provisioned", zap.String("email", email))
		}
	}
	return s.sessions.CreateToken(ctx, email)
}

func randomPassword() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
