package validate

import (
	"strings"

	"github.com/mvbarbosa/fuellog/internal/domain"
)

// Error carries every violation of a failed validation so handlers can list
// them all instead of only the first. It matches domain.ErrValidation under
// errors.Is, keeping the handler-side mapping uniform with other services.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Field
	}
	return "validation error: " + strings.Join(keys, ", ")
}

// Is makes errors.Is(err, domain.ErrValidation) true for *Error.
func (e *Error) Is(target error) bool {
	return target == domain.ErrValidation
}
