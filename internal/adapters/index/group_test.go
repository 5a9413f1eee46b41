package index

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/okian/souk/internal/domain/model"
)

func newTestFreelancer(id string) *model.Freelancer {
	return model.NewFreelancer(id, "web_dev", 100, 50, 50, 50, 50, 50)
}

// checkPositions verifies that every tracked position matches the actual
// slot in the group's arrays.
func checkPositions(t *testing.T, g *Group) {
	t.Helper()
	for i, f := range g.All() {
		if f.PositionInService != i {
			t.Fatalf("%s: PositionInService=%d, slot=%d", f.ID, f.PositionInService, i)
		}
	}
	for i, f := range g.Available() {
		if f.PositionInAvailable != i {
			t.Fatalf("%s: PositionInAvailable=%d, slot=%d", f.ID, f.PositionInAvailable, i)
		}
	}
}

func TestGroupAddTracksPositions(t *testing.T) {
	g := NewGroup()
	for i := 0; i < 10; i++ {
		g.Add(newTestFreelancer("f" + strconv.Itoa(i)))
	}
	if g.Len() != 10 || g.AvailableLen() != 10 {
		t.Fatalf("got len=%d avail=%d, want 10 10", g.Len(), g.AvailableLen())
	}
	checkPositions(t, g)
}

func TestGroupRemoveSwapsWithLast(t *testing.T) {
	g := NewGroup()
	fs := make([]*model.Freelancer, 5)
	for i := range fs {
		fs[i] = newTestFreelancer("f" + strconv.Itoa(i))
		g.Add(fs[i])
	}

	// Removing from the middle must move the last element into the hole.
	g.Remove(fs[1])
	if g.Len() != 4 || g.AvailableLen() != 4 {
		t.Fatalf("got len=%d avail=%d, want 4 4", g.Len(), g.AvailableLen())
	}
	if fs[1].PositionInService != -1 || fs[1].PositionInAvailable != -1 {
		t.Fatalf("removed freelancer keeps positions %d/%d",
			fs[1].PositionInService, fs[1].PositionInAvailable)
	}
	if g.All()[1] != fs[4] {
		t.Fatalf("last element was not swapped into the hole")
	}
	checkPositions(t, g)
}

func TestGroupRemoveTwiceIsNoop(t *testing.T) {
	g := NewGroup()
	f := newTestFreelancer("f0")
	g.Add(f)
	g.Remove(f)
	g.Remove(f)
	if g.Len() != 0 {
		t.Fatalf("got len=%d, want 0", g.Len())
	}
}

func TestGroupAvailabilityToggle(t *testing.T) {
	g := NewGroup()
	a := newTestFreelancer("a")
	b := newTestFreelancer("b")
	g.Add(a)
	g.Add(b)

	g.NotifyUnavailable(a)
	if g.AvailableLen() != 1 || g.Available()[0] != b {
		t.Fatalf("a still listed as available")
	}
	if a.PositionInAvailable != -1 {
		t.Fatalf("a keeps PositionInAvailable=%d", a.PositionInAvailable)
	}
	// Membership in the service array is unaffected.
	if g.Len() != 2 {
		t.Fatalf("got len=%d, want 2", g.Len())
	}

	g.NotifyAvailable(a)
	if g.AvailableLen() != 2 {
		t.Fatalf("a did not return to the available list")
	}
	checkPositions(t, g)
}

func TestGroupRemoveUnavailableMember(t *testing.T) {
	g := NewGroup()
	a := newTestFreelancer("a")
	b := newTestFreelancer("b")
	g.Add(a)
	g.Add(b)
	g.NotifyUnavailable(a)

	g.Remove(a)
	if g.Len() != 1 || g.AvailableLen() != 1 {
		t.Fatalf("got len=%d avail=%d, want 1 1", g.Len(), g.AvailableLen())
	}
	checkPositions(t, g)
}

// Random add/remove/toggle churn: the position fields must stay exact after
// every operation, since removal correctness depends on them.
func TestGroupRandomChurnKeepsPositionsExact(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := NewGroup()

	var members []*model.Freelancer
	next := 0

	for step := 0; step < 5000; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(members) == 0:
			f := newTestFreelancer("f" + strconv.Itoa(next))
			next++
			g.Add(f)
			members = append(members, f)
		case op == 1:
			i := rng.Intn(len(members))
			f := members[i]
			g.Remove(f)
			members[i] = members[len(members)-1]
			members = members[:len(members)-1]
		case op == 2:
			f := members[rng.Intn(len(members))]
			if f.PositionInAvailable != -1 {
				g.NotifyUnavailable(f)
			}
		default:
			f := members[rng.Intn(len(members))]
			if f.PositionInAvailable == -1 {
				g.NotifyAvailable(f)
			}
		}
		checkPositions(t, g)
	}

	if g.Len() != len(members) {
		t.Fatalf("got len=%d, want %d", g.Len(), len(members))
	}
}
