package ruleset

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/noahsark/internal/game/skill"
)

// Quote keys used by Recruit.Quotes.
const (
	QuoteAttack = "attack"
	QuoteSkill  = "skill"
	QuoteWin    = "win"
)

// Recruit is a named character that can lead or join the party.
type Recruit struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	ArchetypeID string `yaml:"archetype"`
	// Level is the level the recruit joins at; zero means 1.
	Level int `yaml:"level"`
	// Bonus is a flat stat bonus applied once at creation.
	Bonus  Growth            `yaml:"bonus"`
	Skills []skill.Def       `yaml:"skills"`
	Quotes map[string]string `yaml:"quotes"`
	// Leader marks the recruit the party always starts with.
	Leader bool `yaml:"leader"`
}

// Validate checks the recruit's own invariants; archetype resolution happens in Registry.
func (r *Recruit) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if r.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if r.ArchetypeID == "" {
		errs = append(errs, errors.New("archetype must not be empty"))
	}
	if r.Level < 0 {
		errs = append(errs, fmt.Errorf("level must be >= 0, got %d", r.Level))
	}
	for _, d := range r.Skills {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("recruit %q: %w", r.ID, errors.Join(errs...))
	}
	return nil
}

// StartLevel returns the level the recruit is created at.
func (r *Recruit) StartLevel() int {
	if r.Level < 1 {
		return 1
	}
	return r.Level
}

// LoadRecruits reads all .yaml files in dir and parses each as a Recruit.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated recruits or a non-nil error.
func LoadRecruits(dir string) ([]*Recruit, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	recruits := make([]*Recruit, 0, len(files))
	for _, path := range files {
		var r Recruit
		if err := decodeFile(path, &r); err != nil {
			return nil, fmt.Errorf("loading recruit: %w", err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recruits = append(recruits, &r)
	}
	return recruits, nil
}
