package explore

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
)

// Recruiter builds characters from recruit content.
type Recruiter struct {
	reg *ruleset.Registry
	rng dice.Rand
}

// NewRecruiter creates a Recruiter drawing companions with rng.
//
// Precondition: reg and rng must be non-nil.
func NewRecruiter(reg *ruleset.Registry, rng dice.Rand) *Recruiter {
	return &Recruiter{reg: reg, rng: rng}
}

// Build creates the character for rc using its registered archetype.
func (r *Recruiter) Build(rc *ruleset.Recruit) (*character.Character, error) {
	arch, ok := r.reg.Archetype(rc.ArchetypeID)
	if !ok {
		return nil, fmt.Errorf("explore: recruit %q references unknown archetype %q", rc.ID, rc.ArchetypeID)
	}
	return character.Build(rc, arch)
}

// Leader builds the player-controlled party leader.
func (r *Recruiter) Leader() (*character.Character, error) {
	rc := r.reg.Leader()
	if rc == nil {
		return nil, errors.New("explore: no recruit is marked as leader")
	}
	return r.Build(rc)
}

// Unmet draws up to attempts companions uniformly and builds the first one
// not already on the roster.
//
// Postcondition: Returns (nil, nil) when every draw was already on the roster.
func (r *Recruiter) Unmet(roster *Roster, attempts int) (*character.Character, error) {
	pool := r.reg.Companions()
	if len(pool) == 0 {
		return nil, nil
	}
	for range attempts {
		rc := pool[r.rng.UniformInt(0, len(pool)-1)]
		if roster.Has(rc.Name) {
			continue
		}
		return r.Build(rc)
	}
	return nil, nil
}

// StartingRoster builds the leader plus companions distinct random teammates.
// Duplicate draws are redrawn; the count is capped by the companions available.
//
// Postcondition: Party()[0] is the leader.
func (r *Recruiter) StartingRoster(companions int) (*Roster, error) {
	leader, err := r.Leader()
	if err != nil {
		return nil, err
	}
	roster := NewRoster(leader)
	pool := r.reg.Companions()
	companions = min(companions, len(pool), character.MaxPartySize-1)
	for len(roster.Party()) < companions+1 {
		rc := pool[r.rng.UniformInt(0, len(pool)-1)]
		if roster.Has(rc.Name) {
			continue
		}
		c, err := r.Build(rc)
		if err != nil {
			return nil, err
		}
		roster.Add(c)
	}
	return roster, nil
}
