// Package errors gathers validation failures so a caller can report all of
// them in one error.
package errors

import (
	"errors"
	"fmt"
	"slices"
)

// Collection accumulates errors. The zero value is ready to use. It is not
// safe for concurrent use.
type Collection struct {
	errors []error
}

// Add records err. Nil is ignored, so results can be added unchecked.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf records fmt.Errorf(format, args...). Use %w to keep a sentinel matchable.
func (c *Collection) Addf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Errorf(format, args...))
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns a copy of the recorded errors in the order they were added.
func (c *Collection) Errors() []error {
	return slices.Clone(c.errors)
}

// GetError is nil for an empty collection and the lone error for a single one.
// Several errors come back joined, one per line, each still matchable with
// errors.Is.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
