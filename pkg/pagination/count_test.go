package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/pkg/pagination"
)

func TestPageCount(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		total int
		size  int
		want  int
	}{
		"exact":          {total: 40, size: 10, want: 4},
		"remainder":      {total: 41, size: 10, want: 5},
		"fewer than one": {total: 3, size: 10, want: 1},
		"one per page":   {total: 7, size: 1, want: 7},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pagination.PageCount(tc.total, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPageCount_Errors(t *testing.T) {
	t.Parallel()

	_, err := pagination.PageCount(0, 10)
	require.ErrorIs(t, err, pagination.ErrInvalidArgument)
	assert.EqualError(t, err, "page count: total number of items must be a positive number")

	_, err = pagination.PageCount(10, -1)
	require.ErrorIs(t, err, pagination.ErrInvalidArgument)
	assert.EqualError(t, err, "page count: page size must be a positive number")
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, pagination.IsPositive(1))
	assert.False(t, pagination.IsPositive(0))
	assert.True(t, pagination.IsNonNegative(0))
	assert.False(t, pagination.IsNonNegative(-1))
}
