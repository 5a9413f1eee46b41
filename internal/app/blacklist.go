package app

import "github.com/okian/souk/pkg/container"

// perCustomerSetCapacity sizes each customer's blacklist set.
const perCustomerSetCapacity = 1024

// blacklistRegistry maps customer IDs to the set of freelancer IDs they
// have blacklisted. Sets are created on first use; an absent entry is
// equivalent to an empty set.
type blacklistRegistry struct {
	byCustomer *container.Map[*container.Set]
}

func newBlacklistRegistry(capacity int) *blacklistRegistry {
	return &blacklistRegistry{byCustomer: container.NewMap[*container.Set](capacity)}
}

func (b *blacklistRegistry) add(customerID, freelancerID string) {
	set := b.byCustomer.GetOrCreate(customerID, func(string) *container.Set {
		return container.NewSet(perCustomerSetCapacity)
	})
	set.Add(freelancerID)
}

func (b *blacklistRegistry) remove(customerID, freelancerID string) {
	if set, ok := b.byCustomer.Get(customerID); ok {
		set.Remove(freelancerID)
	}
}

func (b *blacklistRegistry) contains(customerID, freelancerID string) bool {
	set, ok := b.byCustomer.Get(customerID)
	return ok && set.Contains(freelancerID)
}

func (b *blacklistRegistry) countFor(customerID string) int {
	if set, ok := b.byCustomer.Get(customerID); ok {
		return set.Len()
	}
	return 0
}

// setFor returns the customer's blacklist set, or nil when none exists.
func (b *blacklistRegistry) setFor(customerID string) *container.Set {
	set, _ := b.byCustomer.Get(customerID)
	return set
}
