package attr

import (
	"fmt"
	"maps"
	"slices"
)

// UpdaterCanvas is the reserved trigger target for attributes the surface
// consumes directly. It needs no updater; the set only marks itself dirty.
const UpdaterCanvas = "canvas"

// Changes is a loosely typed change request.
type Changes map[string]any

// Values holds normalized attribute values.
type Values map[string]any

// UpdaterFunc recomputes derived state after a batch. changed lists the
// batch keys that triggered it, in sorted order. It may call Apply on the
// same set.
type UpdaterFunc func(s *Set, changed []string) error

// Updater is a named UpdaterFunc. Declaration order decides invocation
// order within a pass.
type Updater struct {
	Name string
	Fn   UpdaterFunc
}

// Definition is one layer of a schema. Later layers override earlier ones
// key by key; an updater with an existing name keeps its original position.
type Definition struct {
	Processors map[string]Processor
	Aliases    map[string]string
	Defaults   Changes
	Triggers   map[string][]string
	Updaters   []Updater
	Animation  map[string]Interpolator
}

// Schema is the immutable, merged attribute description of one sprite
// kind. It is safe to share between shapes and goroutines.
type Schema struct {
	processors map[string]Processor
	aliases    map[string]string
	triggers   map[string][]string
	updaters   []Updater
	order      map[string]int
	animation  map[string]Interpolator
	defaults   Values
}

// NewSchema merges defs in order and validates the result. Every trigger
// target must be a declared updater or UpdaterCanvas, and every default
// must pass its processor.
func NewSchema(defs ...Definition) (*Schema, error) {
	s := &Schema{
		processors: make(map[string]Processor),
		aliases:    make(map[string]string),
		triggers:   make(map[string][]string),
		order:      make(map[string]int),
		animation:  make(map[string]Interpolator),
	}
	defaults := make(Changes)
	for _, d := range defs {
		maps.Copy(s.processors, d.Processors)
		maps.Copy(s.aliases, d.Aliases)
		maps.Copy(defaults, d.Defaults)
		maps.Copy(s.animation, d.Animation)
		for name, targets := range d.Triggers {
			s.triggers[name] = slices.Clone(targets)
		}
		for _, u := range d.Updaters {
			if i, ok := s.order[u.Name]; ok {
				s.updaters[i] = u
				continue
			}
			s.order[u.Name] = len(s.updaters)
			s.updaters = append(s.updaters, u)
		}
	}

	for name, targets := range s.triggers {
		for _, t := range targets {
			if t == UpdaterCanvas {
				continue
			}
			if _, ok := s.order[t]; !ok {
				return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownUpdater, name, t)
			}
		}
	}

	vals, err := s.Normalize(defaults, false)
	if err != nil {
		return nil, fmt.Errorf("attr: defaults: %w", err)
	}
	for k := range defaults {
		if _, ok := vals[s.Canonical(k)]; !ok && !isShorthand(k) {
			return nil, fmt.Errorf("attr: default %q: %w", k, ErrRejected)
		}
	}
	s.defaults = vals
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for
// package-level schema construction.
func MustSchema(defs ...Definition) *Schema {
	s, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Canonical resolves an alias to its canonical name.
func (s *Schema) Canonical(name string) string {
	if c, ok := s.aliases[name]; ok {
		return c
	}
	return name
}

// Processor returns the processor declared for a canonical name.
func (s *Schema) Processor(name string) (Processor, bool) {
	p, ok := s.processors[name]
	return p, ok
}

// Triggers returns the updater names fired by a canonical attribute.
func (s *Schema) Triggers(name string) []string {
	return s.triggers[name]
}

// Defaults returns a copy of the normalized defaults.
func (s *Schema) Defaults() Values {
	return maps.Clone(s.defaults)
}

// Updaters returns the updater names in declaration order.
func (s *Schema) Updaters() []string {
	names := make([]string, len(s.updaters))
	for i, u := range s.updaters {
		names[i] = u.Name
	}
	return names
}

// Interpolator returns the interpolator for a canonical attribute: the
// one a definition named, else the default for its processor kind, else
// Step.
func (s *Schema) Interpolator(name string) Interpolator {
	if ip, ok := s.animation[name]; ok && ip != nil {
		return ip
	}
	if p, ok := s.processors[name]; ok {
		if ip, ok := defaultInterpolators[p.kind]; ok {
			return ip
		}
	}
	return Step
}
