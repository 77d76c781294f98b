package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
	"inkwell/internal/textutil"
)

// userRepoStub is a stub for repository.UserRepository backed by a map.
type userRepoStub struct {
	users  map[string]*models.User
	nextID models.UserID
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[string]*models.User{}, nextID: 1}
}

func (s *userRepoStub) GetByID(_ context.Context, id models.UserID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, nil
}

func (s *userRepoStub) Create(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.Username]; ok {
		return models.NewAlreadyExistsError("User")
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.Username] = user
	return nil
}

func (s *userRepoStub) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := NewService(newUserRepoStub())

		user, token, err := svc.Register(ctx, RegisterInput{
			Username: "  Carver  ",
			Password: "hunter12",
			Verify:   "hunter12",
		})
		require.NoError(t, err)
		assert.Equal(t, "carver", user.Username)
		assert.Len(t, user.Salt, 16)

		wantHash, err := textutil.HashCredential(user.Salt, "hunter12")
		require.NoError(t, err)
		assert.Equal(t, wantHash, user.PasswordHash)

		assert.Equal(t, Token{Name: "carver", Secret: wantHash}, token)
	})

	t.Run("Invalid Username", func(t *testing.T) {
		svc := NewService(newUserRepoStub())
		_, _, err := svc.Register(ctx, RegisterInput{Username: "1abc", Password: "hunter12", Verify: "hunter12"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("Invalid Password", func(t *testing.T) {
		svc := NewService(newUserRepoStub())
		_, _, err := svc.Register(ctx, RegisterInput{Username: "carver", Password: "abcdef", Verify: "abcdef"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		svc := NewService(newUserRepoStub())
		_, _, err := svc.Register(ctx, RegisterInput{Username: "carver", Password: "hunter12", Verify: "hunter13"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		svc := NewService(newUserRepoStub())
		_, _, err := svc.Register(ctx, RegisterInput{Username: "carver", Password: "hunter12", Verify: "hunter12"})
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, RegisterInput{Username: "Carver", Password: "other999", Verify: "other999"})
		assert.True(t, models.HasCode(err, models.CodeAlreadyExists))
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newUserRepoStub())

	_, _, err := svc.Register(ctx, RegisterInput{Username: "carver", Password: "hunter12", Verify: "hunter12"})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user, token, err := svc.Authenticate(ctx, "carver", "hunter12")
		require.NoError(t, err)
		assert.Equal(t, "carver", user.Username)
		assert.Equal(t, user.PasswordHash, token.Secret)
	})

	t.Run("Normalizes Username", func(t *testing.T) {
		user, _, err := svc.Authenticate(ctx, " CARVER ", "hunter12")
		require.NoError(t, err)
		assert.Equal(t, "carver", user.Username)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "nobody", "hunter12")
		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "carver", "wrong99")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestService_ValidateSession(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newUserRepoStub())

	registered, token, err := svc.Register(ctx, RegisterInput{Username: "carver", Password: "hunter12", Verify: "hunter12"})
	require.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		user, err := svc.ValidateSession(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Empty Token Is Anonymous", func(t *testing.T) {
		user, err := svc.ValidateSession(ctx, Token{})
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Tampered Secret Is Anonymous", func(t *testing.T) {
		user, err := svc.ValidateSession(ctx, Token{Name: token.Name, Secret: "forged"})
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Unknown Name Is Anonymous", func(t *testing.T) {
		user, err := svc.ValidateSession(ctx, Token{Name: "ghost", Secret: token.Secret})
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}
