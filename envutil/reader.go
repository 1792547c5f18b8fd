//nolint:ireturn
package envutil

import (
	"errors"
	"fmt"
)

var (
	ErrBadEnvVar     = errors.New("error parsing environment variable")
	ErrEnvVarMissing = errors.New("missing environment variable")
)

// Reader is a value read from an environment variable, together with whether
// it was set and any error from parsing it. Transformations carry the key
// along so that errors name the variable.
type Reader[A any] struct {
	key     string
	present bool
	err     error

	value A
}

// Value returns the parsed value, or an error if the variable is missing or
// failed to parse.
func (e Reader[A]) Value() (A, error) {
	if e.err != nil {
		return e.value, fmt.Errorf("%w %s: %w", ErrBadEnvVar, e.key, e.err)
	}

	if !e.present {
		return e.value, fmt.Errorf("%w %s", ErrEnvVarMissing, e.key)
	}

	return e.value, nil
}

// ValueOrElse returns the value if it is present and parsed, v otherwise.
func (e Reader[A]) ValueOrElse(v A) A {
	if e.present && e.err == nil {
		return e.value
	}

	return v
}

// DoWithValue calls f with the value if it is present and parsed.
func (e Reader[A]) DoWithValue(f func(A)) {
	if e.present && e.err == nil {
		f(e.value)
	}
}

// HasValue reports whether the variable was set and parsed.
func (e Reader[A]) HasValue() bool {
	return e.present && e.err == nil
}

// HasError reports whether parsing failed.
func (e Reader[A]) HasError() bool {
	return e.err != nil
}

// Error returns the parse error, if any, wrapped with the variable name.
func (e Reader[A]) Error() error {
	if e.err == nil {
		return nil
	}

	_, err := e.Value()

	return err
}

func (e Reader[A]) String() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%s=<error: %v>", e.key, e.err)
	case e.present:
		return fmt.Sprintf("%s=%v", e.key, e.value)
	default:
		return e.key + "=<not set>"
	}
}

// WithDefault returns a Reader holding v when the variable was not set.
func (e Reader[A]) WithDefault(v A) Reader[A] {
	if e.present || e.err != nil {
		return e
	}

	return Reader[A]{key: e.key, present: true, value: v}
}

// Map transforms the value, keeping absence and earlier errors as they are.
func Map[A any, B any](env Reader[A], f func(A) (B, error)) Reader[B] {
	if !env.present || env.err != nil {
		return Reader[B]{key: env.key, present: env.present, err: env.err}
	}

	val, err := f(env.value)

	return Reader[B]{key: env.key, present: true, err: err, value: val}
}
