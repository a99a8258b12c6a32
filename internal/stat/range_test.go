package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeClampFixedBounds(t *testing.T) {
	tests := []struct {
		name    string
		operand float64
		want    float64
	}{
		{"above max clamps down", 50, 100}, // 100+50=150 → 100
		{"below min clamps up", -110, 0},   // 100-110=-10 → 0
		{"inside range untouched", -60, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(100).WithMinValue(0).WithMaxValue(100)
			require.NoError(t, s.AddModifier(NewModifier(OpAdd, TargetCurrent, tt.operand)))
			assert.Equal(t, tt.want, s.CurrentValue())
		})
	}
}

// TestRangeDependentClamp wires health's max bound to the live maxHealth
// stat: raising maxHealth widens the room health may grow into, without
// touching health itself.
func TestRangeDependentClamp(t *testing.T) {
	maxHealth := New(100).WithMinValue(100).WithMaxValue(200)
	health := New(100).WithMinValue(0).WithMaxStat(maxHealth)

	require.NoError(t, maxHealth.AddModifier(NewModifier(OpAdd, TargetCurrent, 50)))
	assert.Equal(t, 150.0, maxHealth.CurrentValue())
	assert.Equal(t, 100.0, health.CurrentValue(), "raising the bound leaves health untouched")

	require.NoError(t, health.AddModifier(NewModifier(OpAdd, TargetCurrent, 100)))
	assert.Equal(t, 150.0, health.CurrentValue(), "clamped to the raised max, not 200")
}

// TestRangeBoundChangeInvalidatesOwner checks the dirty propagation
// path: the bound's change event must flag the dependent stat.
func TestRangeBoundChangeInvalidatesOwner(t *testing.T) {
	bound := New(100)
	s := New(50).WithMaxStat(bound)

	require.Equal(t, 50.0, s.CurrentValue())
	ver := s.Version()

	// Shrink the bound below s's value; reading the bound fires its
	// change event, which marks s dirty.
	require.NoError(t, bound.AddModifier(NewModifier(OpSubtract, TargetCurrent, 70)))
	require.Equal(t, 30.0, bound.CurrentValue())

	assert.Equal(t, 30.0, s.CurrentValue())
	assert.Equal(t, ver+1, s.Version())
}

// TestRangeBoundBaseChangeInvalidatesOwner moves only the bound's base
// value: a current-target Multiply 0 pins its current at zero, then a
// base-target add raises the base alone. The dependent stat's base clamp
// must pick up the new bound base.
func TestRangeBoundBaseChangeInvalidatesOwner(t *testing.T) {
	bound := New(100)
	require.NoError(t, bound.AddModifier(NewModifier(OpMultiply, TargetCurrent, 0)))
	s := New(200).WithMaxStat(bound)

	require.Equal(t, 100.0, s.BaseValue())
	require.Equal(t, 0.0, s.CurrentValue())

	require.NoError(t, bound.AddModifier(NewModifier(OpAdd, TargetBase, 50)))
	require.Equal(t, 150.0, bound.BaseValue())
	require.Equal(t, 0.0, bound.CurrentValue(), "bound current stays pinned")

	assert.Equal(t, 150.0, s.BaseValue())
}

// TestRangeInvalidAfterBoundBaseMove drives the max bound's base below
// the fixed min while its current never moves; the base change event
// alone must trigger re-validation.
func TestRangeInvalidAfterBoundBaseMove(t *testing.T) {
	max := New(100)
	require.NoError(t, max.AddModifier(NewModifier(OpMultiply, TargetCurrent, 0)))
	_ = New(0).WithMinValue(0).WithMaxStat(max)

	require.NoError(t, max.AddModifier(NewModifier(OpSubtract, TargetBase, 150)))
	assert.PanicsWithError(t, ErrInvalidRange.Error(), func() {
		_ = max.BaseValue()
	})
}

func TestRangeInvalidAttach(t *testing.T) {
	s := New(50).WithMaxValue(100)

	err := s.SetMinStat(New(150))
	require.ErrorIs(t, err, ErrInvalidRange)

	// The failed attach must not have replaced anything: no min bound,
	// max still in force.
	require.NoError(t, s.AddModifier(NewModifier(OpAdd, TargetCurrent, 500)))
	assert.Equal(t, 100.0, s.CurrentValue())
}

func TestRangeInvalidAttachFluentPanics(t *testing.T) {
	s := New(50).WithMaxValue(100)

	assert.PanicsWithError(t, ErrInvalidRange.Error(), func() {
		s.WithMinValue(150)
	})
}

func TestRangeInvalidAfterBoundMove(t *testing.T) {
	max := New(100)
	_ = New(50).WithMinValue(0).WithMaxStat(max)

	// Drive the max bound below the fixed min of 0. Its change event
	// re-validates the configuration, which is a programmer error.
	require.NoError(t, max.AddModifier(NewModifier(OpSubtract, TargetCurrent, 200)))
	assert.PanicsWithError(t, ErrInvalidRange.Error(), func() {
		_ = max.CurrentValue()
	})
}

func TestRangeReplaceBoundUnsubscribes(t *testing.T) {
	b1 := New(100)
	b2 := New(200)
	s := New(50)
	require.NoError(t, s.SetMaxStat(b1))
	require.NoError(t, s.SetMaxStat(b2))
	require.Equal(t, 50.0, s.CurrentValue())
	ver := s.Version()

	// Moving the detached bound must not invalidate s anymore.
	require.NoError(t, b1.AddModifier(NewModifier(OpAdd, TargetCurrent, 500)))
	require.Equal(t, 600.0, b1.CurrentValue())

	_ = s.CurrentValue()
	assert.Equal(t, ver, s.Version())
}

func TestRangeDisposeDetachesBorrowedBound(t *testing.T) {
	bound := New(100)
	s := New(50).WithMaxStat(bound)
	require.Equal(t, 50.0, s.CurrentValue())

	s.Dispose()

	// The borrowed bound stays alive and no longer reaches s.
	require.NoError(t, bound.AddModifier(NewModifier(OpAdd, TargetCurrent, 50)))
	assert.Equal(t, 150.0, bound.CurrentValue())
}

func TestRangeMinOnly(t *testing.T) {
	s := New(10).WithMinValue(0)

	require.NoError(t, s.AddModifier(NewModifier(OpSubtract, TargetBase, 25)))
	assert.Equal(t, 0.0, s.BaseValue(), "base clamps against the bound's base")
	assert.Equal(t, 0.0, s.CurrentValue())
}

func TestRangeNilBoundStat(t *testing.T) {
	s := New(10)

	assert.ErrorIs(t, s.SetMinStat(nil), ErrNilStat)
	assert.ErrorIs(t, s.SetMaxStat(nil), ErrNilStat)
}

// TestRangeChainedDependents walks a two-edge dependency chain:
// stamina's max follows health, health's max follows maxHealth.
func TestRangeChainedDependents(t *testing.T) {
	maxHealth := New(200)
	health := New(200).WithMaxStat(maxHealth)
	stamina := New(200).WithMaxStat(health)

	require.NoError(t, maxHealth.AddModifier(NewModifier(OpSubtract, TargetCurrent, 50)))

	// Reading the chain tail pulls fresh values through both edges.
	assert.Equal(t, 150.0, stamina.CurrentValue())
	assert.Equal(t, 150.0, health.CurrentValue())
	assert.Equal(t, 150.0, maxHealth.CurrentValue())
}
