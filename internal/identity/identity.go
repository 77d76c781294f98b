// Package identity implements registration, sign-in, and the cookie-pair
// session scheme: a session is the username plus the stored credential hash,
// carried verbatim in two cookies and revalidated against the store on every
// request.
package identity

import (
	"context"
	"crypto/hmac"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/textutil"
	"inkwell/internal/validation"
)

const saltLength = 16

// Authentication failures are distinguished so the sign-in form can flag the
// username and password fields separately.
var (
	ErrUnknownUser   = errors.New("unknown username")
	ErrWrongPassword = errors.New("wrong password")
)

// Token is the cookie-pair session credential. Secret is the stored credential
// hash itself, so tokens never expire and survive server restarts; they are
// invalidated only implicitly, by the hash changing.
type Token struct {
	Name   string
	Secret string
}

// Service provides account registration and session validation.
type Service struct {
	users repository.UserRepository
}

// RegisterInput carries the raw sign-up form fields.
type RegisterInput struct {
	Username string
	Password string
	Verify   string
}

// NewService creates a new identity service.
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Register validates the input, creates the account, and returns the new user
// with a session token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, Token, error) {
	username, err := validation.NormalizeUsername(in.Username)
	if err != nil {
		return nil, Token{}, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, Token{}, models.NewValidationError(err.Error())
	}
	if in.Password != in.Verify {
		return nil, Token{}, models.NewValidationError("passwords do not match")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, Token{}, err
	}
	if existing != nil {
		return nil, Token{}, models.NewAlreadyExistsError("User")
	}

	salt, err := textutil.GenerateSalt(saltLength)
	if err != nil {
		return nil, Token{}, models.NewInternalError(err)
	}
	hash, err := textutil.HashCredential(salt, in.Password)
	if err != nil {
		return nil, Token{}, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, Token{}, err
	}

	return user, Token{Name: user.Username, Secret: user.PasswordHash}, nil
}

// Authenticate checks a username/password pair and returns the user with a
// session token. It returns ErrUnknownUser when no such account exists and
// ErrWrongPassword when the account exists but the password does not match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, Token, error) {
	username, err := validation.NormalizeUsername(username)
	if err != nil {
		return nil, Token{}, ErrUnknownUser
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, Token{}, err
	}
	if user == nil {
		return nil, Token{}, ErrUnknownUser
	}

	hash, err := textutil.HashCredential(user.Salt, password)
	if err != nil || !hmac.Equal([]byte(hash), []byte(user.PasswordHash)) {
		return nil, Token{}, ErrWrongPassword
	}

	return user, Token{Name: user.Username, Secret: user.PasswordHash}, nil
}

// ValidateSession resolves a cookie-pair token back to its user. It returns
// (nil, nil) for an absent or stale token: an invalid session is anonymity,
// not an error.
func (s *Service) ValidateSession(ctx context.Context, token Token) (*models.User, error) {
	if token.Name == "" || token.Secret == "" {
		return nil, nil
	}

	user, err := s.users.GetByUsername(ctx, token.Name)
	if err != nil {
		return nil, err
	}
	// Constant-time comparison: the secret is a bearer credential.
	if user == nil || !hmac.Equal([]byte(user.PasswordHash), []byte(token.Secret)) {
		return nil, nil
	}
	return user, nil
}
