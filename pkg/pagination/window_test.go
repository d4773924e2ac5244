package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/pkg/pagination"
)

func TestAdjacentWindow(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		adjacent    int
		current     int
		last        int
		wantLower   []int
		wantGreater []int
	}{
		"first page moves share to greater side": {
			adjacent:    2,
			current:     1,
			last:        10,
			wantLower:   []int{},
			wantGreater: []int{2, 3, 4, 5},
		},
		"last page moves share to lower side": {
			adjacent:    2,
			current:     10,
			last:        10,
			wantLower:   []int{6, 7, 8, 9},
			wantGreater: []int{},
		},
		"middle page": {
			adjacent:    2,
			current:     5,
			last:        10,
			wantLower:   []int{3, 4},
			wantGreater: []int{6, 7},
		},
		"near start": {
			adjacent:    2,
			current:     2,
			last:        10,
			wantLower:   []int{1},
			wantGreater: []int{3, 4, 5},
		},
		"both sides exhausted": {
			adjacent:    2,
			current:     2,
			last:        3,
			wantLower:   []int{1},
			wantGreater: []int{3},
		},
		"single page": {
			adjacent:    3,
			current:     1,
			last:        1,
			wantLower:   []int{},
			wantGreater: []int{},
		},
		"redistribution limited by available pages": {
			adjacent:    3,
			current:     1,
			last:        4,
			wantLower:   []int{},
			wantGreater: []int{2, 3, 4},
		},
		"zero adjacent": {
			adjacent:    0,
			current:     5,
			last:        10,
			wantLower:   []int{},
			wantGreater: []int{},
		},
		"negative adjacent": {
			adjacent:    -2,
			current:     5,
			last:        10,
			wantLower:   []int{},
			wantGreater: []int{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w, err := pagination.AdjacentWindow(tc.adjacent, tc.current, tc.last)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLower, w.Lower)
			assert.Equal(t, tc.wantGreater, w.Greater)
			assert.Equal(t, len(tc.wantLower)+len(tc.wantGreater), w.Len())
		})
	}
}

func TestAdjacentWindow_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		current int
		last    int
		want    pagination.Code
	}{
		"last page zero": {
			current: 1,
			last:    0,
			want:    pagination.CodeLastPageNotPositive,
		},
		"current page zero": {
			current: 0,
			last:    5,
			want:    pagination.CodeCurrentPageNotPositive,
		},
		"current after last": {
			current: 6,
			last:    5,
			want:    pagination.CodeCurrentPageAfterLast,
		},
		"last page checked first": {
			current: 0,
			last:    -1,
			want:    pagination.CodeLastPageNotPositive,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pagination.AdjacentWindow(2, tc.current, tc.last)
			require.ErrorIs(t, err, pagination.ErrInvalidArgument)

			var perr *pagination.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.want, perr.Code)
			assert.Equal(t, "adjacent window", perr.Op)
		})
	}
}

func TestAdjacentWindow_Sweep(t *testing.T) {
	t.Parallel()

	for adjacent := range 6 {
		for last := 1; last <= 12; last++ {
			for current := 1; current <= last; current++ {
				w, err := pagination.AdjacentWindow(adjacent, current, last)
				require.NoError(t, err)

				assert.Equal(t, min(2*adjacent, last-1), w.Len(),
					"adjacent=%d current=%d last=%d", adjacent, current, last)

				pages := append(append([]int{}, w.Lower...), current)
				pages = append(pages, w.Greater...)

				for i := 1; i < len(pages); i++ {
					assert.Equal(t, pages[i-1]+1, pages[i],
						"adjacent=%d current=%d last=%d: %v", adjacent, current, last, pages)
				}

				assert.GreaterOrEqual(t, pages[0], 1)
				assert.LessOrEqual(t, pages[len(pages)-1], last)
				assert.NotContains(t, w.Lower, current)
				assert.NotContains(t, w.Greater, current)
			}
		}
	}
}
