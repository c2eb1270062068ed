package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/database/users"
	"github.com/mrlokans/authkeeper/internal/entities"
)

// Operation names reported to an OperationObserver.
const (
	OperationRegister   = "register"
	OperationLogin      = "login"
	OperationGetAccount = "get_account"
)

// Operation results reported to an OperationObserver.
const (
	ResultSuccess            = "success"
	ResultValidation         = "validation"
	ResultConflict           = "conflict"
	ResultInvalidCredentials = "invalid_credentials"
	ResultNotFound           = "not_found"
	ResultError              = "error"
)

// timingPassword is hashed once per service and verified against on unknown
// usernames.
const timingPassword = "authkeeper-unknown-user"

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

// AccountStore is the persistence contract the account service needs.
type AccountStore interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// Authenticator hashes credentials and issues tokens.
type Authenticator interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
	IssueToken(user *entities.User) (string, error)
}

// OperationObserver is told the outcome of every account operation.
type OperationObserver func(operation, result string)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  entities.UserView `json:"user"`
}

// AccountService registers accounts, logs them in and reads them back.
type AccountService struct {
	store   AccountStore
	auth    Authenticator
	log     zerolog.Logger
	observe OperationObserver

	dummyOnce sync.Once
	dummyHash string
}

// AccountOption configures an AccountService.
type AccountOption func(*AccountService)

// WithOperationObserver reports operation outcomes, e.g. to metrics.
func WithOperationObserver(observe OperationObserver) AccountOption {
	return func(s *AccountService) {
		s.observe = observe
	}
}

func NewAccountService(store AccountStore, authenticator Authenticator, log zerolog.Logger, opts ...AccountOption) *AccountService {
	s := &AccountService{
		store: store,
		auth:  authenticator,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and returns a token for it.
//
// The existence check runs before field validation, so a request that is
// both a duplicate and malformed reports the conflict.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (result *AuthResult, err error) {
	defer func() { s.report(OperationRegister, err) }()

	exists, err := s.store.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		// Two registrations can both pass the existence check.
		if errors.Is(err, users.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	created, err := s.store.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created user: %w", err)
	}

	token, err := s.auth.IssueToken(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("account registered")

	return &AuthResult{Token: token, User: created.View()}, nil
}

// Login verifies credentials and returns a fresh token. Unknown usernames
// and wrong passwords fail with the same ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (result *AuthResult, err error) {
	defer func() { s.report(OperationLogin, err) }()

	user, err := s.store.GetByUsername(ctx, req.Username)
	if errors.Is(err, users.ErrNotFound) {
		s.verifyDummy(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user.View()}, nil
}

// GetAccount returns the account view for id.
func (s *AccountService) GetAccount(ctx context.Context, id string) (view *entities.UserView, err error) {
	defer func() { s.report(OperationGetAccount, err) }()

	user, err := s.store.GetByID(ctx, id)
	if errors.Is(err, users.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	v := user.View()
	return &v, nil
}

// verifyDummy spends one bcrypt verify at the configured cost, so an unknown
// username takes as long to reject as a wrong password.
func (s *AccountService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.auth.HashPassword(timingPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to prepare timing hash")
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.auth.VerifyPassword(password, s.dummyHash)
	}
}

func validateRegistration(req RegisterRequest) error {
	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
		return validationError("Username must be between 3 and 50 characters")
	}
	if len(req.Password) < minPasswordLength {
		return validationError("Password must be at least 6 characters")
	}
	if !strings.Contains(req.Email, "@") {
		return validationError("Invalid email format")
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return validationError("Password must be at most 72 bytes")
	}
	return nil
}

func (s *AccountService) report(operation string, err error) {
	result := resultOf(err)
	if result == ResultError {
		s.log.Error().Err(err).Str("operation", operation).Msg("account operation failed")
	}
	if s.observe != nil {
		s.observe(operation, result)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, ErrValidation):
		return ResultValidation
	case errors.Is(err, ErrConflict):
		return ResultConflict
	case errors.Is(err, ErrInvalidCredentials):
		return ResultInvalidCredentials
	case errors.Is(err, ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
