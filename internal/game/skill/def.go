package skill

import (
	"errors"
	"fmt"
)

// Def is the YAML definition of a skill inside a recruit's roster.
type Def struct {
	Name                string  `yaml:"name"`
	Description         string  `yaml:"description"`
	Kind                Kind    `yaml:"kind"`
	Stat                Stat    `yaml:"stat"`
	Multiplier          float64 `yaml:"multiplier"`
	Flat                int     `yaml:"flat"`
	KnowledgeMultiplier float64 `yaml:"knowledge_multiplier"`
	Cooldown            int     `yaml:"cooldown"`
}

// Validate checks the definition's invariants.
//
// Postcondition: Returns nil iff the definition can be built.
func (d Def) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must be >= 0, got %d", d.Cooldown))
	}
	switch d.Kind {
	case KindAttack:
		switch d.Stat {
		case StatPower, StatKnowledge, StatLuck:
		default:
			errs = append(errs, fmt.Errorf("stat must be one of power, knowledge, luck; got %q", d.Stat))
		}
		if d.Multiplier < 0 {
			errs = append(errs, errors.New("multiplier must be >= 0"))
		}
	case KindHeal:
		if d.Flat < 0 || d.KnowledgeMultiplier < 0 {
			errs = append(errs, errors.New("heal amounts must be >= 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("kind must be attack or heal; got %q", d.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("skill %q: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// Build validates d and returns a ready Skill.
func (d Def) Build() (*Skill, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var eff Effect
	if d.Kind == KindHeal {
		eff = HealEffect{Flat: d.Flat, KnowledgeMultiplier: d.KnowledgeMultiplier}
	} else {
		eff = AttackEffect{Stat: d.Stat, Multiplier: d.Multiplier, Flat: d.Flat}
	}
	return New(d.Name, d.Description, d.Cooldown, eff), nil
}
