package sorter

import (
	"math/rand"
	"sort"
	"testing"
)

func intCompare(a, b int) int { return a - b }

func TestSortEmptyAndSingle(t *testing.T) {
	Sort(nil, intCompare)
	Sort([]int{}, intCompare)

	s := []int{7}
	Sort(s, intCompare)
	if s[0] != 7 {
		t.Fatalf("single element changed")
	}
}

func TestSortOrdersDuplicates(t *testing.T) {
	s := []int{5, 1, 5, 3, 1, 5}
	Sort(s, intCompare)
	want := []int{1, 1, 3, 5, 5, 5}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, s[i], want[i])
		}
	}
}

func TestSortMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(500)
		s := make([]int, n)
		for i := range s {
			s[i] = rng.Intn(100)
		}
		want := append([]int(nil), s...)
		sort.Ints(want)

		Sort(s, intCompare)
		for i := range want {
			if s[i] != want[i] {
				t.Fatalf("trial %d index %d: got %d, want %d", trial, i, s[i], want[i])
			}
		}
	}
}

func TestSortCustomComparator(t *testing.T) {
	type pair struct {
		score int
		id    string
	}
	s := []pair{
		{10, "b"}, {20, "c"}, {10, "a"}, {30, "d"},
	}
	// Score descending, then ID ascending.
	Sort(s, func(a, b pair) int {
		if a.score != b.score {
			return b.score - a.score
		}
		if a.id < b.id {
			return -1
		}
		if a.id > b.id {
			return 1
		}
		return 0
	})
	want := []pair{{30, "d"}, {20, "c"}, {10, "a"}, {10, "b"}}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("index %d: got %+v, want %+v", i, s[i], want[i])
		}
	}
}
