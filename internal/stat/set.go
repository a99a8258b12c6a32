package stat

import "sort"

// ID keys a stat inside a Set. Consumers define their own constants:
//
//	const (
//		StatHealth stat.ID = iota
//		StatMaxHealth
//		StatStrength
//	)
type ID int32

// Set is a flat registry of stats keyed by ID. It adds no calculation
// logic of its own; everything goes through the Stat primitives.
type Set struct {
	stats map[ID]*Stat
}

// NewSet creates an empty registry.
func NewSet() *Set {
	return &Set{stats: make(map[ID]*Stat)}
}

// Register creates a stat with the given initial value and stores it
// under id. Registering an id twice is refused.
func (st *Set) Register(id ID, initial float64) (*Stat, error) {
	s := New(initial)
	if err := st.Put(id, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Put stores an already-built stat under id. Used when the stat needs
// bounds or modifiers configured before registration.
func (st *Set) Put(id ID, s *Stat) error {
	if s == nil {
		return ErrNilStat
	}
	if _, ok := st.stats[id]; ok {
		return ErrDuplicateStat
	}
	st.stats[id] = s
	return nil
}

// Get returns the stat registered under id.
func (st *Set) Get(id ID) (*Stat, error) {
	s, ok := st.stats[id]
	if !ok {
		return nil, ErrStatNotFound
	}
	return s, nil
}

// MustGet returns the stat registered under id, panicking when the id is
// unknown. For call sites where a missing id is a bug, not a condition.
func (st *Set) MustGet(id ID) *Stat {
	s, err := st.Get(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of registered stats.
func (st *Set) Len() int {
	return len(st.stats)
}

// IDs returns the registered ids in ascending order.
func (st *Set) IDs() []ID {
	ids := make([]ID, 0, len(st.stats))
	for id := range st.stats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ResetAll resets every registered stat to its initial value.
func (st *Set) ResetAll() {
	for _, s := range st.stats {
		s.Reset()
	}
}

// Dispose disposes every registered stat and empties the registry.
func (st *Set) Dispose() {
	for _, s := range st.stats {
		s.Dispose()
	}
	st.stats = make(map[ID]*Stat)
}
