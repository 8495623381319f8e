// Package dice provides the randomness abstraction shared by every part of the
// combat core: the uniform integer port, its backing sources, and a small
// dice-expression evaluator used by content files.
package dice

import "fmt"

// Source is the randomness provider behind every roll.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Rand is the uniform integer port consumed by the combat core.
//
// Every randomized decision (dodge, crit, encounter gating, NPC action choice)
// is routed through a single Rand so that battles are reproducible in tests.
type Rand interface {
	// UniformInt returns an int in [min, max], both bounds inclusive.
	//
	// Precondition: min <= max.
	UniformInt(min, max int) int
}

// Between draws a uniform int in [min, max] from src.
//
// Precondition: min <= max; src must be non-nil.
// Postcondition: min <= result <= max.
func Between(src Source, min, max int) int {
	if min > max {
		panic(fmt.Sprintf("dice: Between called with min %d > max %d", min, max))
	}
	return min + src.Intn(max-min+1)
}

// RollResult holds the audit trail for a single dice expression evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "1d2+1 → [2] +1 = 3".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
