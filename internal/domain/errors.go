package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. final odometer reading not past the initial one).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned when adding a vehicle whose name (compared
// case-insensitively) and category match an existing one.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicate = errors.New("duplicate")

// ErrConfirmRequired is returned by destructive operations that were invoked
// without the explicit confirmation step.
var ErrConfirmRequired = errors.New("confirmation required")
