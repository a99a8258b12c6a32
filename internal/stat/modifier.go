package stat

import "fmt"

// Op identifies the arithmetic operation a modifier performs.
type Op uint8

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpPercentAdd
	OpPercentSubtract
	OpPercentMultiply
)

// String returns the lower-case name of the operation.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpPercentAdd:
		return "percent_add"
	case OpPercentSubtract:
		return "percent_subtract"
	case OpPercentMultiply:
		return "percent_multiply"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Target selects which of the two stat values a modifier applies to.
// Base modifiers shape the permanent base value, Current modifiers layer
// transient effects on top of it.
type Target uint8

const (
	TargetBase Target = iota
	TargetCurrent
)

// String returns the lower-case name of the target.
func (t Target) String() string {
	switch t {
	case TargetBase:
		return "base"
	case TargetCurrent:
		return "current"
	default:
		return fmt.Sprintf("target(%d)", uint8(t))
	}
}

// Modifier is an immutable value transform applied during stat
// recalculation. Identity is the pointer: the same *Modifier can be
// registered once and later removed by the same reference.
//
// Percentage operands are whole numbers: 50 means 50%.
type Modifier struct {
	op      Op
	target  Target
	operand float64
}

// NewModifier builds a modifier. The value is fixed at construction.
func NewModifier(op Op, target Target, operand float64) *Modifier {
	return &Modifier{op: op, target: target, operand: operand}
}

// Op returns the arithmetic operation kind.
func (m *Modifier) Op() Op { return m.op }

// Target returns which value the modifier applies to.
func (m *Modifier) Target() Target { return m.target }

// Operand returns the operand supplied at construction.
func (m *Modifier) Operand() float64 { return m.operand }

// Calculate applies the modifier to in and returns the result. Pure, no
// side effects. An unknown operation returns the input unchanged.
//
// PercentMultiply is intentionally the same formula as PercentAdd: both
// scale by (1 + v/100). Game data relies on the two being interchangeable.
func (m *Modifier) Calculate(in float64) float64 {
	switch m.op {
	case OpAdd:
		return in + m.operand
	case OpSubtract:
		return in - m.operand
	case OpMultiply:
		return in * m.operand
	case OpPercentAdd:
		return in * (1 + m.operand/100)
	case OpPercentSubtract:
		return in * (1 - m.operand/100)
	case OpPercentMultiply:
		return in * (1 + m.operand/100)
	default:
		return in
	}
}

// String renders the modifier for debug dumps, e.g. "add current 25".
func (m *Modifier) String() string {
	return fmt.Sprintf("%s %s %g", m.op, m.target, m.operand)
}
