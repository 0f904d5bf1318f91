package shared

import (
	"errors"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

var (
	// ErrNotFound indicates resource not found. Shared with the HTTP layer
	// so repositories can surface it without per-handler translation.
	ErrNotFound = httpx.ErrNotFound
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists indicates a unique constraint collision.
	ErrAlreadyExists = errors.New("already exists")
)
