package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"100", 100, false},
		{" 12.50 ", 12.5, false},
		{"-5", -5, false},
		{"", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidateNonEmpty(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, ValidateNonEmpty("   "), ErrEmptyInput)
	require.NoError(t, ValidateNonEmpty("1234"))
}

func TestPrefixSearcher(t *testing.T) {
	t.Parallel()

	search := PrefixSearcher([]string{"Insert card", "Withdraw", "Work done"})

	assert.True(t, search("ins", 0))
	assert.True(t, search("W", 1))
	assert.True(t, search("wo", 2))
	assert.False(t, search("wo", 1))
	assert.False(t, search("", 0))
	assert.False(t, search("x", 5))
}
