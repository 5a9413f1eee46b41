// Package index maintains the per-service freelancer groups. Each group
// keeps two parallel dynamic arrays: every freelancer assigned to the
// service, and the subset currently available for employment. Membership
// toggles in O(1) via swap-with-last removal, driven by the position fields
// recorded on the freelancer itself.
package index

import "github.com/okian/souk/internal/domain/model"

const initialCapacity = 16384

// Group indexes the freelancers assigned to one service.
type Group struct {
	all       []*model.Freelancer
	available []*model.Freelancer
}

// NewGroup constructs an empty service group.
func NewGroup() *Group {
	return &Group{
		all:       make([]*model.Freelancer, 0, initialCapacity),
		available: make([]*model.Freelancer, 0, initialCapacity),
	}
}

// Add appends f to the group and, when f is available, to the available
// list as well.
func (g *Group) Add(f *model.Freelancer) {
	f.PositionInService = len(g.all)
	g.all = append(g.all, f)
	if f.Available {
		g.NotifyAvailable(f)
	}
}

// Remove deletes f from both arrays by overwriting its slot with the last
// element. A position outside current bounds is a no-op.
func (g *Group) Remove(f *model.Freelancer) {
	if f.Available {
		g.NotifyUnavailable(f)
	}

	i := f.PositionInService
	if i < 0 || i >= len(g.all) {
		return
	}
	last := len(g.all) - 1
	g.all[i] = g.all[last]
	g.all[last] = nil
	g.all = g.all[:last]
	if i < last {
		g.all[i].PositionInService = i
	}
	f.PositionInService = -1
}

// NotifyAvailable appends f to the available list and records its slot.
func (g *Group) NotifyAvailable(f *model.Freelancer) {
	f.PositionInAvailable = len(g.available)
	g.available = append(g.available, f)
}

// NotifyUnavailable removes f from the available list via swap-with-last.
// A position outside current bounds is a no-op.
func (g *Group) NotifyUnavailable(f *model.Freelancer) {
	i := f.PositionInAvailable
	if i < 0 || i >= len(g.available) {
		return
	}
	last := len(g.available) - 1
	g.available[i] = g.available[last]
	g.available[last] = nil
	g.available = g.available[:last]
	if i < last {
		g.available[i].PositionInAvailable = i
	}
	f.PositionInAvailable = -1
}

// All returns the current assignment list. The slice is shared with the
// group and must not be retained across mutations.
func (g *Group) All() []*model.Freelancer {
	return g.all
}

// Available returns the current availability list. Same sharing caveat as All.
func (g *Group) Available() []*model.Freelancer {
	return g.available
}

// Len returns the number of freelancers assigned to the service.
func (g *Group) Len() int {
	return len(g.all)
}

// AvailableLen returns the number of available freelancers.
func (g *Group) AvailableLen() int {
	return len(g.available)
}
