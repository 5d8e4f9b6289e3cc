// Package auth registers and signs in users and resolves bearer tokens back
// to stored accounts.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/security"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserStore is the part of the store the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, req db.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// Result is a signed-in user and their token.
type Result struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Service implements password register and login.
type Service struct {
	users  UserStore
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewService returns a Service with the given dependencies.
func NewService(users UserStore, hasher *security.Hasher, tokens *security.TokenProvider) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and signs it in. The first account ever
// registered is the administrator.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, db.Invalid("username, email, and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, db.Invalid("invalid email format")
	}
	if len(password) < MinPasswordLength {
		return nil, db.Invalid("password must be at least %d characters long", MinPasswordLength)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateUser(ctx, db.CreateUserRequest{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login accepts a username or email. Unknown users and wrong passwords both
// return db.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, login, password string) (*Result, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, db.Invalid("username and password are required")
	}
	user, err := s.users.FindUserByLogin(ctx, login)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, db.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, db.ErrInvalidCredentials
	}
	return s.issue(user)
}

// Authenticate validates a bearer token and loads the user it names.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, claims.UserID)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, security.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issue(user *models.User) (*Result, error) {
	tok, exp, err := s.tokens.Issue(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &Result{Token: tok, ExpiresAt: exp, User: user}, nil
}
