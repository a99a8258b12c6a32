// Package stat implements a modifier-driven numeric stat: a base value
// plus an ordered set of arithmetic modifiers, with optional min/max
// clamping against other stats' live values.
//
// The engine is single-threaded and pull-based: mutations only mark a
// stat dirty, the actual recalculation happens lazily on the next value
// read. Change notifications are delivered synchronously on the reading
// call stack, so a bound stat's change can recalculate its dependents
// inline. The bound dependency graph must be kept acyclic by the caller.
package stat

import "math"

// epsilon is the tolerance used when deciding whether a recalculated
// value actually changed. Exact float comparison would fire change
// events for pure rounding noise.
const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Stat is a numeric quantity with a cached base and current value. The
// base value reflects permanent (base-target) modifiers; the current
// value layers transient (current-target) modifiers on top, clamped to
// the configured range.
type Stat struct {
	initial float64
	base    float64
	current float64
	dirty   bool
	version uint64

	mods   *mediator
	ranges *rangeConfig

	currentChanged signal
	baseChanged    signal
}

// New creates a clean stat with base and current equal to initial. The
// initial value is fixed for the stat's lifetime and is what Reset
// returns to.
func New(initial float64) *Stat {
	return &Stat{
		initial: initial,
		base:    initial,
		current: initial,
		mods:    newMediator(),
	}
}

// InitialValue returns the construction-time value.
func (s *Stat) InitialValue() float64 { return s.initial }

// CurrentValue returns the calculated current value, recalculating first
// if the stat is dirty.
func (s *Stat) CurrentValue() float64 {
	s.recalculate()
	return s.current
}

// BaseValue returns the calculated base value, recalculating first if
// the stat is dirty.
func (s *Stat) BaseValue() float64 {
	s.recalculate()
	return s.base
}

// Version counts completed recalculations. Two reads without an
// intervening mutation observe the same version.
func (s *Stat) Version() uint64 { return s.version }

// AddModifier registers m. The same pointer may be registered more than
// once and then counts once per registration.
func (s *Stat) AddModifier(m *Modifier) error {
	if err := s.mods.add(m); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// AddTaggedModifier registers m under tag for later tagged removal.
//
// On ErrDuplicateTag the modifier has still been appended to the
// registry (only the tag entry is refused), so the stat is marked dirty
// even on that error path. Removal then has to go through RemoveModifier.
func (s *Stat) AddTaggedModifier(m *Modifier, tag string) error {
	if m == nil {
		return ErrNilModifier
	}
	err := s.mods.addTagged(m, tag)
	s.Invalidate()
	return err
}

// RemoveModifier removes m by identity.
func (s *Stat) RemoveModifier(m *Modifier) error {
	if err := s.mods.remove(m); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// RemoveTaggedModifier removes the modifier registered under tag.
func (s *Stat) RemoveTaggedModifier(tag string) error {
	if err := s.mods.removeTagged(tag); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Modifiers returns an ordered snapshot of the registered modifiers.
func (s *Stat) Modifiers() []*Modifier {
	return s.mods.snapshot()
}

// Reset removes every modifier and restores base and current to the
// initial value. The stat is left dirty so the range configuration is
// reapplied on the next read. Range bounds themselves are not reset.
func (s *Stat) Reset() {
	s.mods.clear()
	s.base = s.initial
	s.current = s.initial
	s.Invalidate()
}

// Invalidate marks the cached values stale. The next read of
// CurrentValue or BaseValue recalculates both. Range configurations call
// this when a bound moves; external callers rarely need it.
func (s *Stat) Invalidate() {
	s.dirty = true
}

// SetMinValue installs a fixed min bound owned by this stat's range
// configuration, replacing any previous min bound.
func (s *Stat) SetMinValue(v float64) error {
	return s.ensureRanges().setMinValue(v)
}

// SetMaxValue installs a fixed max bound owned by this stat's range
// configuration, replacing any previous max bound.
func (s *Stat) SetMaxValue(v float64) error {
	return s.ensureRanges().setMaxValue(v)
}

// SetMinStat attaches bound as a live, externally owned min bound.
// Changes in bound's current value invalidate this stat.
func (s *Stat) SetMinStat(bound *Stat) error {
	return s.ensureRanges().setMinStat(bound)
}

// SetMaxStat attaches bound as a live, externally owned max bound.
func (s *Stat) SetMaxStat(bound *Stat) error {
	return s.ensureRanges().setMaxStat(bound)
}

// WithMinValue is the fluent form of SetMinValue. Range violations are
// programmer errors and panic.
func (s *Stat) WithMinValue(v float64) *Stat {
	mustRange(s.SetMinValue(v))
	return s
}

// WithMaxValue is the fluent form of SetMaxValue.
func (s *Stat) WithMaxValue(v float64) *Stat {
	mustRange(s.SetMaxValue(v))
	return s
}

// WithMinStat is the fluent form of SetMinStat.
func (s *Stat) WithMinStat(bound *Stat) *Stat {
	mustRange(s.SetMinStat(bound))
	return s
}

// WithMaxStat is the fluent form of SetMaxStat.
func (s *Stat) WithMaxStat(bound *Stat) *Stat {
	mustRange(s.SetMaxStat(bound))
	return s
}

// OnCurrentChanged subscribes fn to current-value changes and returns a
// handle for UnsubscribeCurrent. fn receives the new value, synchronously
// during recalculation.
func (s *Stat) OnCurrentChanged(fn func(newValue float64)) int {
	return s.currentChanged.subscribe(fn)
}

// OnBaseChanged subscribes fn to base-value changes.
func (s *Stat) OnBaseChanged(fn func(newValue float64)) int {
	return s.baseChanged.subscribe(fn)
}

// UnsubscribeCurrent detaches a current-value listener by handle.
func (s *Stat) UnsubscribeCurrent(id int) bool {
	return s.currentChanged.unsubscribe(id)
}

// UnsubscribeBase detaches a base-value listener by handle.
func (s *Stat) UnsubscribeBase(id int) bool {
	return s.baseChanged.unsubscribe(id)
}

// Dispose clears both subscriber lists and tears down the range
// configuration, disposing owned bounds and unsubscribing from borrowed
// ones. The modifier registry is left as is.
func (s *Stat) Dispose() {
	s.currentChanged.clear()
	s.baseChanged.clear()
	if s.ranges != nil {
		s.ranges.dispose()
		s.ranges = nil
	}
}

// recalculate brings the caches up to date if the stat is dirty:
// mediator reduction from the initial value, range clamp, approximate
// compare against the previous caches, change events for whichever
// values moved. Caches are updated and the dirty flag cleared before
// events fire, so listeners reading this stat re-entrantly observe the
// new values without recursing.
func (s *Stat) recalculate() {
	if !s.dirty {
		return
	}

	base, current := s.mods.calculateValue(s.initial)
	if s.ranges != nil {
		// Reading a bound can recalculate it and fire its change event,
		// which re-marks this stat dirty. The clamp below already uses
		// the bound's fresh value, so that invalidation is stale: clear
		// the flag after clamping, before our own events fire.
		base = s.ranges.clampBase(base)
		current = s.ranges.clampCurrent(current)
	}
	s.dirty = false

	baseMoved := !approxEqual(base, s.base)
	currentMoved := !approxEqual(current, s.current)
	s.base = base
	s.current = current
	s.version++

	if baseMoved {
		s.baseChanged.emit(s.base)
	}
	if currentMoved {
		s.currentChanged.emit(s.current)
	}
}

// ensureRanges lazily creates the range configuration. Stats that never
// set a bound skip the clamping step entirely.
func (s *Stat) ensureRanges() *rangeConfig {
	if s.ranges == nil {
		s.ranges = newRangeConfig(s.Invalidate)
	}
	return s.ranges
}

func mustRange(err error) {
	if err != nil {
		panic(err)
	}
}
