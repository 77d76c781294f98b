// Package guard centralizes the authorization decisions for mutating
// operations. Every check runs the same chain in a fixed order: is anyone
// signed in, does the resource exist, does the caller own it. The first
// failing step decides the outcome, so a signed-out caller probing a missing
// post learns nothing about whether it ever existed.
package guard

import (
	"reflect"

	"inkwell/internal/models"
)

// Outcome is the result of an authorization check.
type Outcome int

const (
	Authorized Outcome = iota
	Unauthenticated
	NotFound
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Owned is any resource with a single owning user.
type Owned interface {
	OwnerID() models.UserID
}

// RequireSession checks only that a user is signed in.
func RequireSession(user *models.User) Outcome {
	if user == nil {
		return Unauthenticated
	}
	return Authorized
}

// RequireResource checks the session, then that the resource exists.
func RequireResource(user *models.User, resource Owned) Outcome {
	if out := RequireSession(user); out != Authorized {
		return out
	}
	if isNil(resource) {
		return NotFound
	}
	return Authorized
}

// RequireOwner checks the session, the resource, and finally that the caller
// owns the resource.
func RequireOwner(user *models.User, resource Owned) Outcome {
	if out := RequireResource(user, resource); out != Authorized {
		return out
	}
	if resource.OwnerID() != user.ID {
		return Forbidden
	}
	return Authorized
}

// isNil treats a typed nil pointer inside the interface as absent.
func isNil(resource Owned) bool {
	if resource == nil {
		return true
	}
	v := reflect.ValueOf(resource)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
