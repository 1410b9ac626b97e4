package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input Credentials) (*domain.User, error)
	Login(ctx context.Context, input Credentials) (*Token, error)
	EnsureStaff(ctx context.Context, input Credentials) (*domain.User, error)
}

type Credentials struct {
	Email    string
	Password string
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *domain.User) (string, time.Time, error)
}

// PasswordHasher hides the hashing algorithm from the service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
}

type UserService struct {
	users             repository.UserRepository
	tokens            TokenIssuer
	hasher            PasswordHasher
	minPasswordLength int
	log               *logger.Logger
}

func NewUserService(
	users repository.UserRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	minPasswordLength int,
	log *logger.Logger,
) *UserService {
	return &UserService{
		users:             users,
		tokens:            tokens,
		hasher:            hasher,
		minPasswordLength: minPasswordLength,
		log:               log,
	}
}

func (s *UserService) Register(ctx context.Context, input Credentials) (*domain.User, error) {
	return s.create(ctx, input, false)
}

func (s *UserService) create(ctx context.Context, input Credentials, isStaff bool) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if err := s.validate(email, input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash, IsStaff: isStaff}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login exchanges credentials for an access token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input Credentials) (*Token, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Check(user.PasswordHash, input.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	}

	access, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Token{AccessToken: access, ExpiresAt: expiresAt}, nil
}

// EnsureStaff makes sure a staff account exists for the given email.
// An existing non-staff account is promoted; its password is left alone.
func (s *UserService) EnsureStaff(ctx context.Context, input Credentials) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.create(ctx, input, true)
		if err != nil {
			return nil, err
		}
		s.log.WithField("email", email).Info("staff account created")
		return user, nil
	case err != nil:
		return nil, err
	}

	if !user.IsStaff {
		if err := s.users.SetStaff(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("promote user %d: %w", user.ID, err)
		}
		user.IsStaff = true
		s.log.WithField("email", email).Info("user promoted to staff")
	}
	return user, nil
}

func (s *UserService) validate(email, password string) error {
	verr := &domain.ValidationError{}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		verr.Add("email", "enter a valid email address")
	}
	if len(password) < s.minPasswordLength {
		verr.Add("password", fmt.Sprintf("ensure this field has at least %d characters", s.minPasswordLength))
	}
	return verr.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ UserUseCase = (*UserService)(nil)
