package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/models"
)

func TestRequireSession(t *testing.T) {
	assert.Equal(t, Unauthenticated, RequireSession(nil))
	assert.Equal(t, Authorized, RequireSession(&models.User{ID: 1}))
}

func TestRequireResource(t *testing.T) {
	user := &models.User{ID: 1}
	post := &models.Post{ID: 1, UserID: 1}

	tests := []struct {
		name     string
		user     *models.User
		resource Owned
		want     Outcome
	}{
		{"No Session Wins Over Missing Resource", nil, nil, Unauthenticated},
		{"Missing Resource", user, nil, NotFound},
		{"Typed Nil Resource", user, (*models.Post)(nil), NotFound},
		{"Present Resource", user, post, Authorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequireResource(tt.user, tt.resource))
		})
	}
}

func TestRequireOwner(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 1}
	comment := &models.Comment{ID: 5, UserID: 2}

	tests := []struct {
		name     string
		user     *models.User
		resource Owned
		want     Outcome
	}{
		{"Anonymous", nil, post, Unauthenticated},
		{"Missing Resource", owner, (*models.Post)(nil), NotFound},
		{"Owner Of Post", owner, post, Authorized},
		{"Non-Owner Of Post", other, post, Forbidden},
		{"Owner Of Comment", other, comment, Authorized},
		{"Non-Owner Of Comment", owner, comment, Forbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequireOwner(tt.user, tt.resource))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "authorized", Authorized.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "forbidden", Forbidden.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
