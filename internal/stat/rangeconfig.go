package stat

// rangeBound couples a constraint stat with its ownership flag and the
// subscription handles held on it. Owned bounds were created by the
// configuration itself (fixed-value case) and are disposed with it;
// borrowed bounds belong to someone else and are only unsubscribed.
type rangeBound struct {
	stat    *Stat
	owned   bool
	subCur  int
	subBase int
}

// rangeConfig owns the optional min/max constraint stats of one stat and
// clamps calculated values against their live values. It subscribes to
// each bound's current- and base-value changes so a moving bound
// invalidates the owner: clamping and validation compare base values
// too, so a base-only move matters just as much as a current one.
//
// The bound graph must stay acyclic; cycles are not detected here and
// recurse without bound.
type rangeConfig struct {
	min *rangeBound
	max *rangeBound

	// onRangeChanged marks the owning stat dirty. Supplied at
	// construction so the configuration never needs a back-pointer.
	onRangeChanged func()
}

func newRangeConfig(onRangeChanged func()) *rangeConfig {
	return &rangeConfig{onRangeChanged: onRangeChanged}
}

// setMinValue installs an owned fixed-value min bound, replacing any
// previous min bound.
func (rc *rangeConfig) setMinValue(v float64) error {
	return rc.setMin(New(v), true)
}

// setMaxValue installs an owned fixed-value max bound, replacing any
// previous max bound.
func (rc *rangeConfig) setMaxValue(v float64) error {
	return rc.setMax(New(v), true)
}

// setMinStat attaches s as a borrowed, live min bound. Later changes in
// s propagate to the owner.
func (rc *rangeConfig) setMinStat(s *Stat) error {
	if s == nil {
		return ErrNilStat
	}
	return rc.setMin(s, false)
}

// setMaxStat attaches s as a borrowed, live max bound.
func (rc *rangeConfig) setMaxStat(s *Stat) error {
	if s == nil {
		return ErrNilStat
	}
	return rc.setMax(s, false)
}

func (rc *rangeConfig) setMin(s *Stat, owned bool) error {
	// Reject before committing: a failed attach must not replace the
	// previous bound.
	if rc.max != nil {
		if s.CurrentValue() > rc.max.stat.CurrentValue() || s.BaseValue() > rc.max.stat.BaseValue() {
			return ErrInvalidRange
		}
	}
	rc.detach(rc.min)
	rc.min = rc.attach(s, owned)
	rc.onRangeChanged()
	return nil
}

func (rc *rangeConfig) setMax(s *Stat, owned bool) error {
	if rc.min != nil {
		if rc.min.stat.CurrentValue() > s.CurrentValue() || rc.min.stat.BaseValue() > s.BaseValue() {
			return ErrInvalidRange
		}
	}
	rc.detach(rc.max)
	rc.max = rc.attach(s, owned)
	rc.onRangeChanged()
	return nil
}

func (rc *rangeConfig) attach(s *Stat, owned bool) *rangeBound {
	b := &rangeBound{stat: s, owned: owned}
	b.subCur = s.OnCurrentChanged(func(float64) { rc.boundChanged() })
	b.subBase = s.OnBaseChanged(func(float64) { rc.boundChanged() })
	return b
}

func (rc *rangeConfig) detach(b *rangeBound) {
	if b == nil {
		return
	}
	b.stat.UnsubscribeCurrent(b.subCur)
	b.stat.UnsubscribeBase(b.subBase)
	if b.owned {
		b.stat.Dispose()
	}
}

// boundChanged runs inline on the bound's notification. An invalid range
// after a bound moved is a programmer error: fail fast instead of
// clamping against contradictory bounds.
func (rc *rangeConfig) boundChanged() {
	if err := rc.validate(); err != nil {
		panic(err)
	}
	rc.onRangeChanged()
}

// validate reports ErrInvalidRange when both bounds are present and the
// min exceeds the max on either the current or the base value. With one
// or no bounds there is nothing to compare.
func (rc *rangeConfig) validate() error {
	if rc.min == nil || rc.max == nil {
		return nil
	}
	if rc.min.stat.CurrentValue() > rc.max.stat.CurrentValue() {
		return ErrInvalidRange
	}
	if rc.min.stat.BaseValue() > rc.max.stat.BaseValue() {
		return ErrInvalidRange
	}
	return nil
}

// clampCurrent clamps v against the bounds' current values: min check
// first, then max. Bound validity is the caller's responsibility, guarded
// by validate on every bound change.
func (rc *rangeConfig) clampCurrent(v float64) float64 {
	if rc.min != nil {
		if min := rc.min.stat.CurrentValue(); v < min {
			v = min
		}
	}
	if rc.max != nil {
		if max := rc.max.stat.CurrentValue(); v > max {
			v = max
		}
	}
	return v
}

// clampBase clamps v against the bounds' base values, mirroring
// clampCurrent so a stat's base stays inside the bounds' bases.
func (rc *rangeConfig) clampBase(v float64) float64 {
	if rc.min != nil {
		if min := rc.min.stat.BaseValue(); v < min {
			v = min
		}
	}
	if rc.max != nil {
		if max := rc.max.stat.BaseValue(); v > max {
			v = max
		}
	}
	return v
}

// dispose unsubscribes from both bounds and disposes the owned ones.
// Borrowed bounds stay alive for whoever created them.
func (rc *rangeConfig) dispose() {
	rc.detach(rc.min)
	rc.detach(rc.max)
	rc.min = nil
	rc.max = nil
}
