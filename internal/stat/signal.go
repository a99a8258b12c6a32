package stat

// signal is a small synchronous observer list for value-changed
// notifications. Listeners fire in subscription order, inline on the
// emitting call stack. Handles are plain ints so subscribers can detach
// without holding a reference to their own callback.
type signal struct {
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(float64)
}

// subscribe registers fn and returns its handle.
func (s *signal) subscribe(fn func(float64)) int {
	s.nextID++
	s.subs = append(s.subs, subscriber{id: s.nextID, fn: fn})
	return s.nextID
}

// unsubscribe detaches the listener with the given handle. Reports
// whether a listener was found.
func (s *signal) unsubscribe(id int) bool {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

// emit delivers v to every listener, synchronously and recursively: a
// listener may read other stats and trigger their recalculation inline.
func (s *signal) emit(v float64) {
	// Iterate over a snapshot: a listener may unsubscribe during emit.
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(v)
	}
}

// clear drops every listener.
func (s *signal) clear() {
	s.subs = nil
}
