package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBalance = errors.New("balance")     //nolint:err113
	errProb    = errors.New("probability") //nolint:err113
)

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("empty collection has no error", func(t *testing.T) {
		t.Parallel()

		var c Collection

		assert.False(t, c.HasError())
		assert.Zero(t, c.Len())
		assert.NoError(t, c.GetError())
	})

	t.Run("nil errors are ignored", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(nil)

		assert.False(t, c.HasError())
	})

	t.Run("single error is returned as is", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errBalance)

		assert.Same(t, errBalance, c.GetError()) //nolint:testifylint
	})

	t.Run("multiple errors are joined", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errBalance)
		c.Add(nil)
		c.Add(errProb)

		require.Equal(t, 2, c.Len())

		err := c.GetError()
		require.ErrorIs(t, err, errBalance)
		require.ErrorIs(t, err, errProb)
		assert.Equal(t, "balance\nprobability", err.Error())
	})

	t.Run("addf wraps sentinels", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Addf("%w: %v", errBalance, -5)
		c.Add(errProb)

		require.Len(t, c.Errors(), 2)
		require.ErrorIs(t, c.GetError(), errBalance)
		assert.Equal(t, "balance: -5", c.Errors()[0].Error())
	})

	t.Run("errors returns a copy", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errBalance)

		errs := c.Errors()
		errs[0] = errProb

		assert.Same(t, errBalance, c.GetError()) //nolint:testifylint
	})

	t.Run("clear resets", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errBalance)
		c.Clear()

		assert.False(t, c.HasError())
		assert.NoError(t, c.GetError())
	})
}
