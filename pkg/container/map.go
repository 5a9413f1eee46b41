// Package container provides the hand-built associative containers used by
// the engine: a string-keyed hash map with chained buckets and a presence
// set layered on top of it. The engine deliberately does not use Go's
// built-in map for entity storage; capacity is chosen generously at
// construction and the table never rehashes.
package container

// defaultCapacity is the table size used when no capacity is given.
const defaultCapacity = 65536 // 2^16

// entry is a single key/value pair inside a bucket.
type entry[V any] struct {
	key   string
	value V
}

// Map is a fixed-capacity hash table with chained collision resolution.
// The bucket count is the next power of two at or above the requested
// capacity, so the hash can be masked instead of reduced modulo.
type Map[V any] struct {
	buckets [][]entry[V]
	mask    uint32
	size    int
}

// NewMap constructs a map with at least the requested capacity.
func NewMap[V any](capacity int) *Map[V] {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	effective := 1
	for effective < capacity {
		effective <<= 1
	}
	return &Map[V]{
		buckets: make([][]entry[V], effective),
		mask:    uint32(effective - 1),
	}
}

// hash is a 31-multiplier string hash with an xorshift-16 finalizer,
// masked by the power-of-two bucket count.
func (m *Map[V]) hash(key string) uint32 {
	var h int32
	for i := 0; i < len(key); i++ {
		h = 31*h + int32(key[i])
	}
	u := uint32(h)
	return (u ^ (u >> 16)) & m.mask
}

// Put stores value under key. It returns the previous value and true when
// an existing entry was replaced.
func (m *Map[V]) Put(key string, value V) (prev V, replaced bool) {
	idx := m.hash(key)
	bucket := m.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			prev = bucket[i].value
			bucket[i].value = value
			return prev, true
		}
	}
	m.buckets[idx] = append(bucket, entry[V]{key: key, value: value})
	m.size++
	return prev, false
}

// Get returns the value stored under key, if any. Absence is a normal
// outcome, not an error.
func (m *Map[V]) Get(key string) (V, bool) {
	bucket := m.buckets[m.hash(key)]
	for i := range bucket {
		if bucket[i].key == key {
			return bucket[i].value, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes the entry for key and returns the removed value, if any.
// Removal is linear in the bucket length.
func (m *Map[V]) Remove(key string) (V, bool) {
	idx := m.hash(key)
	bucket := m.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			removed := bucket[i].value
			m.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			m.size--
			return removed, true
		}
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key has an entry.
func (m *Map[V]) ContainsKey(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	return m.size
}

// Values returns a snapshot of all stored values in no particular order.
func (m *Map[V]) Values() []V {
	values := make([]V, 0, m.size)
	for _, bucket := range m.buckets {
		for i := range bucket {
			values = append(values, bucket[i].value)
		}
	}
	return values
}

// GetOrCreate returns the value stored under key, creating and storing one
// via factory when absent. The factory runs at most once per absent key.
func (m *Map[V]) GetOrCreate(key string, factory func(key string) V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	v := factory(key)
	m.Put(key, v)
	return v
}
