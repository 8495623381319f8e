// Package ruleset loads the static character content: archetypes with their
// per-level growth and the named recruits built on top of them.
package ruleset

import (
	"errors"
	"fmt"
)

// Growth is a per-level stat increment. Creation stats are level × Growth.
type Growth struct {
	HP        int `yaml:"hp"`
	Power     int `yaml:"power"`
	Knowledge int `yaml:"knowledge"`
	Luck      int `yaml:"luck"`
}

// Archetype defines a class archetype and how it grows on level-up.
//
// Precondition: ID and Name must be non-empty and every Growth field positive after loading.
type Archetype struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Controlled marks archetypes whose characters are driven by the human player.
	Controlled bool   `yaml:"controlled"`
	Growth     Growth `yaml:"growth"`
}

// Validate checks the archetype's invariants.
func (a *Archetype) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	g := a.Growth
	if g.HP < 1 || g.Power < 1 || g.Knowledge < 1 || g.Luck < 1 {
		errs = append(errs, fmt.Errorf("growth values must all be >= 1, got %+v", g))
	}
	if len(errs) > 0 {
		return fmt.Errorf("archetype %q: %w", a.ID, errors.Join(errs...))
	}
	return nil
}

// LoadArchetypes reads all .yaml files in dir and parses each as an Archetype.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated archetypes or a non-nil error.
func LoadArchetypes(dir string) ([]*Archetype, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	for _, path := range files {
		var a Archetype
		if err := decodeFile(path, &a); err != nil {
			return nil, fmt.Errorf("loading archetype: %w", err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		archetypes = append(archetypes, &a)
	}
	return archetypes, nil
}
