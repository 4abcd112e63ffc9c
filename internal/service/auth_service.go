package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/madik/projectdesk/internal/auth"
	"github.com/madik/projectdesk/internal/model"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	users  UserStore
	issuer *auth.Issuer
}

func NewAuthService(users UserStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

type Credentials struct {
	Username string
	Password string
}

func (s *AuthService) Register(ctx context.Context, creds Credentials) (*model.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(creds.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, username, hash)
}

// Login verifies the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, error) {
	username := strings.TrimSpace(creds.Username)
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		return "", ErrUnauthorized
	}
	return s.issuer.Issue(*user)
}
