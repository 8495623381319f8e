// Package npc generates the monsters the party fights, scaled to party strength and location.
package npc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/noahsark/internal/game/progress"
)

// Scale multiplies the base HP, attack and money of an encounter.
type Scale struct {
	HP     float64 `yaml:"hp"`
	Attack float64 `yaml:"attack"`
	Money  float64 `yaml:"money"`
}

// Tier is a generic encounter tier with a pool of names.
type Tier struct {
	Names []string `yaml:"names"`
	Scale Scale    `yaml:"scale"`
}

// BossDef is one entry of the ordered boss gating table.
type BossDef struct {
	ID       progress.Boss `yaml:"id"`
	Name     string        `yaml:"name"`
	Location int           `yaml:"location"`
	// Chance is the percent chance the boss appears when its gate is open.
	Chance int `yaml:"chance"`
	// Repeatable bosses ignore their defeated flag.
	Repeatable bool   `yaml:"repeatable"`
	Scale      Scale  `yaml:"scale"`
	Intro      string `yaml:"intro"`
}

// Table holds every encounter the Generator can produce.
type Table struct {
	Normal Tier `yaml:"normal"`
	Elite  Tier `yaml:"elite"`
	// EliteAbove is the [1,100] roll above which an Elite is produced.
	EliteAbove int       `yaml:"elite_above"`
	Bosses     []BossDef `yaml:"bosses"`
}

// Validate checks that the table satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff both tiers have names, every scale is
// positive, every boss chance is in [0,100] and boss IDs are unique.
func (t *Table) Validate() error {
	var errs []error
	if len(t.Normal.Names) == 0 {
		errs = append(errs, errors.New("normal: names must not be empty"))
	}
	if len(t.Elite.Names) == 0 {
		errs = append(errs, errors.New("elite: names must not be empty"))
	}
	if t.EliteAbove < 0 || t.EliteAbove > 100 {
		errs = append(errs, fmt.Errorf("elite_above must be in [0,100], got %d", t.EliteAbove))
	}
	errs = append(errs, t.Normal.Scale.validate("normal"), t.Elite.Scale.validate("elite"))
	seen := map[progress.Boss]bool{}
	for i, b := range t.Bosses {
		if b.ID == "" || b.Name == "" {
			errs = append(errs, fmt.Errorf("boss[%d]: id and name must not be empty", i))
		}
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("boss[%d]: duplicate id %q", i, b.ID))
		}
		seen[b.ID] = true
		if b.Chance < 0 || b.Chance > 100 {
			errs = append(errs, fmt.Errorf("boss %q: chance must be in [0,100], got %d", b.ID, b.Chance))
		}
		errs = append(errs, b.Scale.validate(string(b.ID)))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("encounter table: %w", err)
	}
	return nil
}

func (s Scale) validate(owner string) error {
	if s.HP <= 0 || s.Attack <= 0 || s.Money < 0 {
		return fmt.Errorf("%s: scale hp and attack must be > 0 and money >= 0", owner)
	}
	return nil
}

// DefaultTable returns the built-in encounter table.
func DefaultTable() *Table {
	return &Table{
		Normal: Tier{
			Names: []string{"Organization Grunt", "Hacked Security Robot", "Armed Frogman", "Unknown Infiltrator"},
			Scale: Scale{HP: 1, Attack: 1, Money: 1},
		},
		Elite: Tier{
			Names: []string{"Organization Elite Sniper", "Heavy Frogman Captain", "Hacker Chief"},
			Scale: Scale{HP: 1.6, Attack: 1.3, Money: 2},
		},
		EliteAbove: 80,
		Bosses: []BossDef{
			{ID: progress.BossKir, Name: "Kir", Location: 3, Chance: 80, Scale: Scale{HP: 2.5, Attack: 1.3, Money: 3}},
			{ID: progress.BossVermouth, Name: "Vermouth", Location: 4, Chance: 75, Scale: Scale{HP: 3.0, Attack: 1.5, Money: 5}},
			{ID: progress.BossVodka, Name: "Vodka", Location: 5, Chance: 70, Scale: Scale{HP: 3.5, Attack: 1.6, Money: 5}},
			{ID: progress.BossGin, Name: "Gin", Location: 6, Chance: 70, Repeatable: true, Scale: Scale{HP: 4.5, Attack: 2.0, Money: 10}},
		},
	}
}

// LoadTableFromBytes parses an encounter table from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Table.
// Postcondition: Returns a validated *Table, or an error.
func LoadTableFromBytes(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing encounter YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTable reads the encounter table at path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading encounter file %q: %w", path, err)
	}
	return LoadTableFromBytes(data)
}
