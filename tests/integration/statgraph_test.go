package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/statcore/internal/data"
	"github.com/udisondev/statcore/internal/stat"
)

const vitalsDefs = `
stats:
  - name: max_health
    initial: 100
    min: {value: 100}
    max: {value: 200}
  - name: health
    initial: 100
    min: {value: 0}
    max: {stat: max_health}
  - name: regen
    initial: 5
    min: {value: 0}
`

// loadVitals writes the shared fixture and loads it into a table.
func loadVitals(t *testing.T) *data.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vitals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(vitalsDefs), 0o644))
	table, err := data.Load(path)
	require.NoError(t, err)
	t.Cleanup(table.Dispose)
	return table
}

// TestStatGraph_DependentClamp drives the full stack: YAML definitions,
// a live stat-referenced bound, buff application and clamping.
func TestStatGraph_DependentClamp(t *testing.T) {
	table := loadVitals(t)

	maxHealth, err := table.Lookup("max_health")
	require.NoError(t, err)
	health, err := table.Lookup("health")
	require.NoError(t, err)

	// Buff max health by +50; health itself does not move.
	require.NoError(t, maxHealth.AddModifier(stat.NewModifier(stat.OpAdd, stat.TargetCurrent, 50)))
	assert.Equal(t, 150.0, maxHealth.CurrentValue())
	assert.Equal(t, 100.0, health.CurrentValue())

	// A +100 heal overshoots and clamps to the raised max.
	heal := stat.NewModifier(stat.OpAdd, stat.TargetCurrent, 100)
	require.NoError(t, health.AddTaggedModifier(heal, "greater_heal"))
	assert.Equal(t, 150.0, health.CurrentValue())

	// Dropping the heal by tag falls back to the unbuffed value.
	require.NoError(t, health.RemoveTaggedModifier("greater_heal"))
	assert.Equal(t, 100.0, health.CurrentValue())
}

// TestStatGraph_NotificationChain checks that a bound change only
// reaches dependents through an actual recalculation, and that the
// dependent's own listeners fire with the clamped value.
func TestStatGraph_NotificationChain(t *testing.T) {
	table := loadVitals(t)

	maxHealth, err := table.Lookup("max_health")
	require.NoError(t, err)
	health, err := table.Lookup("health")
	require.NoError(t, err)

	// Pin health at its max so a shrinking max drags it down.
	require.NoError(t, health.AddModifier(stat.NewModifier(stat.OpAdd, stat.TargetCurrent, 200)))
	require.Equal(t, 100.0, health.CurrentValue())

	var healthValues []float64
	health.OnCurrentChanged(func(v float64) { healthValues = append(healthValues, v) })

	// max_health floor is 100, so buffing +80 then reading moves it to 180.
	require.NoError(t, maxHealth.AddModifier(stat.NewModifier(stat.OpAdd, stat.TargetCurrent, 80)))
	require.Equal(t, 180.0, maxHealth.CurrentValue())

	// Nothing fired yet: health is merely dirty until read.
	assert.Empty(t, healthValues)

	assert.Equal(t, 180.0, health.CurrentValue())
	assert.Equal(t, []float64{180}, healthValues)
}

// TestStatGraph_ResetAll restores every stat of the loaded set while
// keeping range configurations in force.
func TestStatGraph_ResetAll(t *testing.T) {
	table := loadVitals(t)

	health, err := table.Lookup("health")
	require.NoError(t, err)
	regen, err := table.Lookup("regen")
	require.NoError(t, err)

	require.NoError(t, health.AddModifier(stat.NewModifier(stat.OpAdd, stat.TargetCurrent, 40)))
	require.NoError(t, regen.AddModifier(stat.NewModifier(stat.OpSubtract, stat.TargetCurrent, 50)))
	require.Equal(t, 100.0, health.CurrentValue())
	require.Equal(t, 0.0, regen.CurrentValue(), "regen floor holds at 0")

	table.Set().ResetAll()

	assert.Equal(t, 100.0, health.CurrentValue())
	assert.Equal(t, 5.0, regen.CurrentValue())
	assert.Empty(t, health.Modifiers())
	assert.Empty(t, regen.Modifiers())
}
