// Package data loads stat definitions from YAML files and assembles them
// into a populated stat.Set. A definition names a stat, its initial
// value, optional min/max bounds (fixed values or references to other
// defined stats) and optional pre-registered modifiers:
//
//	stats:
//	  - name: max_health
//	    initial: 100
//	    min: {value: 100}
//	    max: {value: 200}
//	  - name: health
//	    initial: 100
//	    min: {value: 0}
//	    max: {stat: max_health}
//	    modifiers:
//	      - op: add
//	        target: current
//	        value: 25
//	        tag: ring_of_vitality
package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/statcore/internal/stat"
)

var (
	ErrEmptyName     = errors.New("stat name is empty")
	ErrDuplicateName = errors.New("stat name already defined")
	ErrUnknownBound  = errors.New("bound references unknown stat")
	ErrBoundCycle    = errors.New("bound references form a cycle")
	ErrBadBound      = errors.New("bound needs exactly one of value or stat")
	ErrUnknownOp     = errors.New("unknown modifier op")
	ErrUnknownTarget = errors.New("unknown modifier target")
)

type fileDef struct {
	Stats []statDef `yaml:"stats"`
}

type statDef struct {
	Name      string        `yaml:"name"`
	Initial   float64       `yaml:"initial"`
	Min       *boundDef     `yaml:"min"`
	Max       *boundDef     `yaml:"max"`
	Modifiers []modifierDef `yaml:"modifiers"`
}

// boundDef is either a fixed value or a reference to another stat by
// name, never both.
type boundDef struct {
	Value *float64 `yaml:"value"`
	Stat  string   `yaml:"stat"`
}

type modifierDef struct {
	Op     string  `yaml:"op"`
	Target string  `yaml:"target"`
	Value  float64 `yaml:"value"`
	Tag    string  `yaml:"tag"`
}

// Table is a loaded stat set plus the name index assigned at load time.
// IDs are sequential in definition order.
type Table struct {
	set   *stat.Set
	ids   map[string]stat.ID
	names []string
}

// Set returns the underlying registry.
func (t *Table) Set() *stat.Set { return t.set }

// Names returns the stat names in definition order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// ID resolves a stat name to its assigned id.
func (t *Table) ID(name string) (stat.ID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Lookup returns the stat defined under name.
func (t *Table) Lookup(name string) (*stat.Stat, error) {
	id, ok := t.ids[name]
	if !ok {
		return nil, fmt.Errorf("stat %q: %w", name, stat.ErrStatNotFound)
	}
	return t.set.MustGet(id), nil
}

// Dispose disposes every loaded stat.
func (t *Table) Dispose() {
	t.set.Dispose()
}

// Load reads and parses every file concurrently, then assembles the
// definitions sequentially. Definitions may reference stats from other
// files; assembly sees them all at once.
func Load(paths ...string) (*Table, error) {
	defs := make([][]statDef, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			var f fileDef
			if err := yaml.Unmarshal(raw, &f); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			defs[i] = f.Stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []statDef
	for _, fileStats := range defs {
		all = append(all, fileStats...)
	}

	table, err := build(all)
	if err != nil {
		return nil, err
	}
	slog.Info("stat definitions loaded", "files", len(paths), "stats", len(all))
	return table, nil
}

// build assembles definitions into a Table: create every stat, add its
// modifiers, then attach bounds in dependency order so a referenced
// bound stat is fully configured before anything validates against it.
func build(defs []statDef) (*Table, error) {
	byName := make(map[string]statDef, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := byName[def.Name]; ok {
			return nil, fmt.Errorf("stat %q: %w", def.Name, ErrDuplicateName)
		}
		byName[def.Name] = def
	}

	order, err := dependencyOrder(defs, byName)
	if err != nil {
		return nil, err
	}

	t := &Table{
		set:   stat.NewSet(),
		ids:   make(map[string]stat.ID, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for i, def := range defs {
		id := stat.ID(i)
		s := stat.New(def.Initial)
		for _, md := range def.Modifiers {
			if err := addModifier(s, md); err != nil {
				return nil, fmt.Errorf("stat %q: %w", def.Name, err)
			}
		}
		if err := t.set.Put(id, s); err != nil {
			return nil, fmt.Errorf("stat %q: %w", def.Name, err)
		}
		t.ids[def.Name] = id
		t.names = append(t.names, def.Name)
	}

	for _, name := range order {
		def := byName[name]
		s := t.set.MustGet(t.ids[name])
		if err := attachBound(t, s, def.Min, true); err != nil {
			return nil, fmt.Errorf("stat %q min: %w", name, err)
		}
		if err := attachBound(t, s, def.Max, false); err != nil {
			return nil, fmt.Errorf("stat %q max: %w", name, err)
		}
	}

	return t, nil
}

func addModifier(s *stat.Stat, md modifierDef) error {
	op, err := parseOp(md.Op)
	if err != nil {
		return err
	}
	target, err := parseTarget(md.Target)
	if err != nil {
		return err
	}
	m := stat.NewModifier(op, target, md.Value)
	if md.Tag != "" {
		return s.AddTaggedModifier(m, md.Tag)
	}
	return s.AddModifier(m)
}

func attachBound(t *Table, s *stat.Stat, b *boundDef, isMin bool) error {
	if b == nil {
		return nil
	}
	switch {
	case b.Value != nil && b.Stat == "":
		if isMin {
			return s.SetMinValue(*b.Value)
		}
		return s.SetMaxValue(*b.Value)
	case b.Value == nil && b.Stat != "":
		bound, err := t.Lookup(b.Stat)
		if err != nil {
			return err
		}
		if isMin {
			return s.SetMinStat(bound)
		}
		return s.SetMaxStat(bound)
	default:
		return ErrBadBound
	}
}

// dependencyOrder returns stat names so that every stat appears after
// the stats its bounds reference. Unknown references and cycles are
// load errors; the engine itself never checks for cycles at runtime.
func dependencyOrder(defs []statDef, byName map[string]statDef) ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(defs))
	order := make([]string, 0, len(defs))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("stat %q: %w", name, ErrBoundCycle)
		}
		state[name] = visiting

		def := byName[name]
		for _, b := range []*boundDef{def.Min, def.Max} {
			if b == nil || b.Stat == "" {
				continue
			}
			if _, ok := byName[b.Stat]; !ok {
				return fmt.Errorf("stat %q references %q: %w", name, b.Stat, ErrUnknownBound)
			}
			if err := visit(b.Stat); err != nil {
				return err
			}
		}

		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, def := range defs {
		if err := visit(def.Name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func parseOp(s string) (stat.Op, error) {
	switch s {
	case "add":
		return stat.OpAdd, nil
	case "subtract":
		return stat.OpSubtract, nil
	case "multiply":
		return stat.OpMultiply, nil
	case "percent_add":
		return stat.OpPercentAdd, nil
	case "percent_subtract":
		return stat.OpPercentSubtract, nil
	case "percent_multiply":
		return stat.OpPercentMultiply, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownOp)
	}
}

func parseTarget(s string) (stat.Target, error) {
	switch s {
	case "base":
		return stat.TargetBase, nil
	case "current":
		return stat.TargetCurrent, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownTarget)
	}
}
