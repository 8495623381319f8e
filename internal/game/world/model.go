// Package world provides the location model: per-location combat modifiers and chapter gates.
package world

import (
	"errors"
	"fmt"
)

// Location is a place the party can travel to.
//
// Invariant: EnemyStatMod > 0; MoneyDropMod >= 0; RequiredChapter >= 0.
type Location struct {
	ID          int
	Name        string
	Description string
	// EnemyStatMod scales generated monster HP and attack.
	EnemyStatMod float64
	// MoneyDropMod scales generated monster money drops.
	MoneyDropMod float64
	// InvestigationBonus is added to the base investigation success rate.
	InvestigationBonus int
	// RequiredChapter is the chapter that unlocks travel here.
	RequiredChapter int
}

// Validate checks that the location satisfies its invariants.
//
// Postcondition: Returns nil if valid, or an error describing every violation.
func (l *Location) Validate() error {
	var errs []error
	if l.ID < 0 {
		errs = append(errs, fmt.Errorf("id must be >= 0, got %d", l.ID))
	}
	if l.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if l.EnemyStatMod <= 0 {
		errs = append(errs, fmt.Errorf("enemy_stat_mod must be > 0, got %g", l.EnemyStatMod))
	}
	if l.MoneyDropMod < 0 {
		errs = append(errs, fmt.Errorf("money_drop_mod must be >= 0, got %g", l.MoneyDropMod))
	}
	if l.RequiredChapter < 0 {
		errs = append(errs, fmt.Errorf("required_chapter must be >= 0, got %d", l.RequiredChapter))
	}
	if len(errs) > 0 {
		return fmt.Errorf("location %d: %w", l.ID, errors.Join(errs...))
	}
	return nil
}

// Unlocked reports whether the location is reachable at chapter.
func (l *Location) Unlocked(chapter int) bool {
	return chapter >= l.RequiredChapter
}
