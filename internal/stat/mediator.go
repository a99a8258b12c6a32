package stat

// mediator owns the modifier registry of a single stat: an ordered list
// plus an optional tag index for O(1) tagged removal.
//
// Invariant: every tagged modifier is also present in the main list
// exactly once; tags are unique within one mediator.
type mediator struct {
	mods []*Modifier
	tags map[string]*Modifier
}

func newMediator() *mediator {
	return &mediator{}
}

// add appends m to the registry. Duplicate references are allowed; the
// same pointer registered twice counts twice.
func (md *mediator) add(m *Modifier) error {
	if m == nil {
		return ErrNilModifier
	}
	md.mods = append(md.mods, m)
	return nil
}

// addTagged appends m, then records it under tag. A tag collision
// returns ErrDuplicateTag but does NOT roll back the append: the
// modifier stays in the main list and must be removed through remove.
// Callers relying on tagged removal must treat the error as fatal.
func (md *mediator) addTagged(m *Modifier, tag string) error {
	if m == nil {
		return ErrNilModifier
	}
	md.mods = append(md.mods, m)
	if _, ok := md.tags[tag]; ok {
		return ErrDuplicateTag
	}
	if md.tags == nil {
		md.tags = make(map[string]*Modifier)
	}
	md.tags[tag] = m
	return nil
}

// remove deletes the first occurrence of m (by pointer identity) from
// the registry, dropping its tag entry if it has one.
func (md *mediator) remove(m *Modifier) error {
	if m == nil {
		return ErrNilModifier
	}
	idx := -1
	for i, existing := range md.mods {
		if existing == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrModifierNotFound
	}
	md.mods = append(md.mods[:idx], md.mods[idx+1:]...)
	for tag, tagged := range md.tags {
		if tagged == m {
			delete(md.tags, tag)
			break
		}
	}
	return nil
}

// removeTagged deletes the modifier registered under tag from both
// structures.
func (md *mediator) removeTagged(tag string) error {
	m, ok := md.tags[tag]
	if !ok {
		return ErrTagNotFound
	}
	delete(md.tags, tag)
	for i, existing := range md.mods {
		if existing == m {
			md.mods = append(md.mods[:i], md.mods[i+1:]...)
			break
		}
	}
	return nil
}

// calculateValue produces (modifiedBase, current) from base. An empty
// registry passes base through unchanged for both outputs.
func (md *mediator) calculateValue(base float64) (float64, float64) {
	if len(md.mods) == 0 {
		return base, base
	}
	return applyModifiers(md.mods, base)
}

// snapshot returns a copy of the registry in application-registration
// order, safe against later mutation.
func (md *mediator) snapshot() []*Modifier {
	out := make([]*Modifier, len(md.mods))
	copy(out, md.mods)
	return out
}

// clear drops every modifier and tag.
func (md *mediator) clear() {
	md.mods = nil
	md.tags = nil
}
