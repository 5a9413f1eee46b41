// Package match selects the top-K eligible freelancers for a job request
// using a fixed-capacity binary min-heap. The heap keeps its worst element
// at the root (lowest score, largest ID on ties) so it can be evicted in
// O(log K); the final ranking sorts the survivors descending by score with
// ascending-ID tie-breaks.
package match

import (
	"strings"

	"github.com/okian/souk/internal/domain/catalog"
	"github.com/okian/souk/internal/domain/model"
	"github.com/okian/souk/internal/domain/scoring"
	"github.com/okian/souk/pkg/container"
	"github.com/okian/souk/pkg/sorter"
)

// MaxK caps the number of ranked candidates per request.
const MaxK = 1000

// Candidate pairs a freelancer with its computed composite score.
type Candidate struct {
	Freelancer *model.Freelancer
	ID         string
	Score      int
}

// heapBefore reports whether a sits below b in the min-heap: ascending by
// score, then descending by ID, so equal-score candidates with larger IDs
// stay closest to eviction.
func heapBefore(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.ID > b.ID
}

// Compare orders candidates for the final ranking: descending by score,
// then ascending by ID. Exported for reuse by full-sort verification.
func Compare(a, b Candidate) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return strings.Compare(a.ID, b.ID)
}

// TopK scans avail once, skipping freelancers in exclude, and returns the k
// best candidates in final ranking order along with the count of eligible
// freelancers seen. k is capped at MaxK; a k larger than the eligible count
// returns everyone ranked. exclude may be nil.
func TopK(avail []*model.Freelancer, svc *catalog.Service, exclude *container.Set, k int) (ranked []Candidate, eligible int) {
	if k > MaxK {
		k = MaxK
	}

	var heap []Candidate
	if k > 0 {
		heap = make([]Candidate, 0, k)
	}

	for _, f := range avail {
		if exclude != nil && exclude.Contains(f.ID) {
			continue
		}
		eligible++

		score := scoring.Composite(f, svc)

		if len(heap) < k {
			heap = append(heap, Candidate{Freelancer: f, ID: f.ID, Score: score})
			siftUp(heap, len(heap)-1)
			continue
		}
		if k <= 0 {
			continue
		}
		root := heap[0]
		if score > root.Score || (score == root.Score && f.ID < root.ID) {
			heap[0] = Candidate{Freelancer: f, ID: f.ID, Score: score}
			siftDown(heap, 0)
		}
	}

	sorter.Sort(heap, Compare)
	return heap, eligible
}

func siftUp(heap []Candidate, i int) {
	for i > 0 {
		parent := (i - 1) >> 1
		if !heapBefore(heap[i], heap[parent]) {
			return
		}
		heap[i], heap[parent] = heap[parent], heap[i]
		i = parent
	}
}

func siftDown(heap []Candidate, i int) {
	n := len(heap)
	for {
		smallest := i
		left := (i << 1) + 1
		right := left + 1
		if left < n && heapBefore(heap[left], heap[smallest]) {
			smallest = left
		}
		if right < n && heapBefore(heap[right], heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		heap[i], heap[smallest] = heap[smallest], heap[i]
		i = smallest
	}
}
