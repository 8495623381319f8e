package ruleset

import (
	"errors"
	"fmt"
)

// Registry indexes loaded archetypes and recruits by ID.
type Registry struct {
	archetypes map[string]*Archetype
	recruits   map[string]*Recruit
	// order preserves recruit load order for deterministic random picks.
	order []*Recruit
}

// NewRegistry builds a Registry, rejecting duplicate IDs and recruits whose
// archetype is unknown.
//
// Postcondition: Returns a Registry with exactly one leader recruit, or an error.
func NewRegistry(archetypes []*Archetype, recruits []*Recruit) (*Registry, error) {
	r := &Registry{
		archetypes: make(map[string]*Archetype, len(archetypes)),
		recruits:   make(map[string]*Recruit, len(recruits)),
	}
	for _, a := range archetypes {
		if _, dup := r.archetypes[a.ID]; dup {
			return nil, fmt.Errorf("ruleset: duplicate archetype %q", a.ID)
		}
		r.archetypes[a.ID] = a
	}
	leaders := 0
	for _, rc := range recruits {
		if _, dup := r.recruits[rc.ID]; dup {
			return nil, fmt.Errorf("ruleset: duplicate recruit %q", rc.ID)
		}
		if _, ok := r.archetypes[rc.ArchetypeID]; !ok {
			return nil, fmt.Errorf("ruleset: recruit %q references unknown archetype %q", rc.ID, rc.ArchetypeID)
		}
		if rc.Leader {
			leaders++
		}
		r.recruits[rc.ID] = rc
		r.order = append(r.order, rc)
	}
	if leaders != 1 {
		return nil, errors.New("ruleset: exactly one recruit must be marked leader")
	}
	return r, nil
}

// Load reads archetypes and recruits from their directories and indexes them.
func Load(archetypeDir, recruitDir string) (*Registry, error) {
	archetypes, err := LoadArchetypes(archetypeDir)
	if err != nil {
		return nil, err
	}
	recruits, err := LoadRecruits(recruitDir)
	if err != nil {
		return nil, err
	}
	return NewRegistry(archetypes, recruits)
}

// Archetype returns the archetype with id, if registered.
func (r *Registry) Archetype(id string) (*Archetype, bool) {
	a, ok := r.archetypes[id]
	return a, ok
}

// Recruit returns the recruit with id, if registered.
func (r *Registry) Recruit(id string) (*Recruit, bool) {
	rc, ok := r.recruits[id]
	return rc, ok
}

// Leader returns the recruit marked as party leader.
func (r *Registry) Leader() *Recruit {
	for _, rc := range r.order {
		if rc.Leader {
			return rc
		}
	}
	return nil
}

// Companions returns every non-leader recruit in load order.
func (r *Registry) Companions() []*Recruit {
	out := make([]*Recruit, 0, len(r.order))
	for _, rc := range r.order {
		if !rc.Leader {
			out = append(out, rc)
		}
	}
	return out
}
