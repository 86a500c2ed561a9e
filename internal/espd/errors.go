package espd

import (
	"errors"
	"fmt"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
)

var (
	ErrUnknownField    = errors.New("unknown criterion field")
	ErrVariantMismatch = errors.New("criterion variant mismatch")
)

// AccessError reports a criterion field that could not be resolved, read or written.
type AccessError struct {
	Op    string
	Field string
	Err   error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("espd: %s %q: %v", e.Op, e.Field, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// InstantiationError reports a variant that has no default constructor.
type InstantiationError struct {
	Variant criteria.Variant
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("espd: cannot instantiate criterion variant %q", string(e.Variant))
}
