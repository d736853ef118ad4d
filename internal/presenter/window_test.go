package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestRecentWindow(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"tail", 2, []int{4, 5}},
		{"exact", 5, []int{1, 2, 3, 4, 5}},
		{"shorter than window", 30, []int{1, 2, 3, 4, 5}},
		{"zero", 0, []int{}},
		{"negative", -1, []int{}},
	}

	for _, test := range tests {
		got := RecentWindow(s, test.n)
		if !cmp.Equal(got, test.want) {
			t.Errorf("%s: %s", test.name, cmp.Diff(test.want, got))
		}
	}
}

func TestRecentWindowIdempotent(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6, 7}
	for _, n := range []int{3, 7, 10} {
		once := RecentWindow(s, n)
		twice := RecentWindow(once, n)
		assert.True(t, cmp.Equal(once, twice))
	}
}

func TestRecentWindowIsView(t *testing.T) {
	s := []int{1, 2, 3, 4}
	w := RecentWindow(s, 2)
	s[3] = 40
	assert.Equal(t, w[1], 40)
}
