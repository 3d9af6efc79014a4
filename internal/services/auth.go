// Package services holds the business operations behind the HTTP handlers:
// registration and login, and owner-scoped destination CRUD.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/crucial707/travel-tracker/internal/apperr"
	"github.com/crucial707/travel-tracker/internal/metrics"
	"github.com/crucial707/travel-tracker/internal/models"
	"github.com/crucial707/travel-tracker/internal/repo"
	"github.com/google/uuid"
)

// UserStore is the credential store.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs access tokens for a subject.
type TokenIssuer interface {
	Issue(subjectID int) (string, error)
}

// AuthService registers users and logs them in.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    slog.Default().With("component", "auth"),
	}
}

// Register creates a user for creds. It fails with apperr.ErrUserExists when the
// email is taken.
func (s *AuthService) Register(ctx context.Context, creds models.Credentials) (*models.PublicUser, error) {
	_, err := s.users.GetByEmail(ctx, creds.Email)
	switch {
	case err == nil:
		metrics.IncAuthEvent("register", "conflict")
		return nil, apperr.ErrUserExists
	case !errors.Is(err, sql.ErrNoRows):
		metrics.IncAuthEvent("register", "error")
		return nil, apperr.Internal(err)
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		metrics.IncAuthEvent("register", "error")
		return nil, apperr.Internal(err)
	}

	user, err := s.users.Create(ctx, creds.Email, hash)
	if err != nil {
		// Lost a race with a concurrent registration of the same email.
		if repo.IsUniqueViolation(err) {
			metrics.IncAuthEvent("register", "conflict")
			return nil, apperr.ErrUserExists
		}
		metrics.IncAuthEvent("register", "error")
		return nil, apperr.Internal(err)
	}

	metrics.IncAuthEvent("register", "ok")
	s.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.Public(), nil
}

// Login verifies creds and issues a token. An unknown email and a wrong
// password both return apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same bcrypt work as a wrong password so timing does not reveal registered emails.
			s.hasher.Verify(creds.Password, s.dummy())
			metrics.IncAuthEvent("login", "unauthorized")
			return nil, apperr.ErrInvalidCredentials
		}
		metrics.IncAuthEvent("login", "error")
		return nil, apperr.Internal(err)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		metrics.IncAuthEvent("login", "unauthorized")
		s.log.WarnContext(ctx, "login failed", "user_id", user.ID)
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.IncAuthEvent("login", "error")
		return nil, apperr.Internal(err)
	}

	metrics.IncAuthEvent("login", "ok")
	return &models.LoginResult{PublicUser: *user.Public(), Token: token}, nil
}

// dummy returns a digest at the configured cost that no login ever matches.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.Error("dummy digest", "err", err)
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}
