package stat

// applyOrder is the canonical operation order used when reducing a group
// of modifiers. Grouping by operation first makes the result independent
// of the order mixed-kind modifiers were registered in; only the relative
// order of modifiers with the same operation matters.
var applyOrder = [...]Op{
	OpSubtract,
	OpPercentSubtract,
	OpAdd,
	OpPercentAdd,
	OpMultiply,
	OpPercentMultiply,
}

// applyModifiers reduces mods over base and returns both the modified
// base value and the final current value.
//
// Base-target modifiers fold over base first; current-target modifiers
// then fold over that intermediate result. Keeping the two groups apart
// leaves the modified base meaningful on its own (a character sheet can
// show "base strength" while a potion only raises the current value).
func applyModifiers(mods []*Modifier, base float64) (modifiedBase, final float64) {
	baseGroup := make([]*Modifier, 0, len(mods))
	currentGroup := make([]*Modifier, 0, len(mods))
	for _, m := range mods {
		if m.target == TargetBase {
			baseGroup = append(baseGroup, m)
		} else {
			currentGroup = append(currentGroup, m)
		}
	}

	modifiedBase = foldGroup(baseGroup, base)
	final = foldGroup(currentGroup, modifiedBase)
	return modifiedBase, final
}

// foldGroup left-folds the group over v, one canonical operation at a
// time, preserving registration order within each operation.
func foldGroup(mods []*Modifier, v float64) float64 {
	for _, op := range applyOrder {
		for _, m := range mods {
			if m.op == op {
				v = m.Calculate(v)
			}
		}
	}
	return v
}
