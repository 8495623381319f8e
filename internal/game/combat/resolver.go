package combat

import "github.com/cory-johannsen/noahsark/internal/game/dice"

// NormalAttackRange returns the inclusive damage bounds of a normal attack:
// [floor(attack·low), floor(attack·high)].
//
// Postcondition: 0 <= lo <= hi for attack >= 0.
func NormalAttackRange(attack int, low, high float64) (lo, hi int) {
	if attack < 0 {
		attack = 0
	}
	lo = int(float64(attack) * low)
	hi = int(float64(attack) * high)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ResolveNormalAttack draws normal attack damage uniformly from NormalAttackRange.
//
// Precondition: rng must be non-nil.
// Postcondition: Returns a value within NormalAttackRange(attack, low, high).
func ResolveNormalAttack(attack int, low, high float64, rng dice.Rand) int {
	lo, hi := NormalAttackRange(attack, low, high)
	return rng.UniformInt(lo, hi)
}

// Dodged reports whether a retaliation aimed at a member with the given speed
// misses. The draw is uniform in [1,100] and must be strictly below speed.
func Dodged(speed int, rng dice.Rand) bool {
	return rng.UniformInt(1, 100) < speed
}
