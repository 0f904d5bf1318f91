package auth

import (
	"context"

	"github.com/olufinja/naijafind/internal/users"
)

// Requirement describes what a caller must satisfy.
type Requirement struct {
	// AdminOnly restricts the operation to moderators.
	AdminOnly bool
	// Roles, when non-empty, is the set of acceptable user types.
	Roles []string
}

// Decision is the tagged outcome of an authorization check: either the
// authorized user is set, or Reason explains the denial. Handlers branch on
// Authorized() instead of helpers failing deep inside the call stack.
type Decision struct {
	User   *users.User
	Reason string
}

// Authorized reports whether the check passed.
func (d Decision) Authorized() bool {
	return d.User != nil
}

func denied(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorizer is the capability a handler must hold to gate an operation.
type Authorizer interface {
	Authorize(ctx context.Context, req Requirement) Decision
}

type userAuthorizer struct {
	users users.Repository
}

// NewAuthorizer builds an Authorizer that resolves the caller identity from
// the request context and loads the account row behind it.
func NewAuthorizer(repo users.Repository) Authorizer {
	return &userAuthorizer{users: repo}
}

func (a *userAuthorizer) Authorize(ctx context.Context, req Requirement) Decision {
	identity := IdentityFromContext(ctx)
	if identity == nil {
		return denied("not signed in")
	}
	user, err := a.users.Get(ctx, identity.UserID)
	if err != nil {
		return denied("account not found")
	}
	if req.AdminOnly && !user.CanModerate() {
		return denied("admin access required")
	}
	if len(req.Roles) > 0 && !user.CanModerate() {
		ok := false
		for _, role := range req.Roles {
			if user.UserType == role {
				ok = true
				break
			}
		}
		if !ok {
			return denied("role not permitted")
		}
	}
	return Decision{User: user}
}
