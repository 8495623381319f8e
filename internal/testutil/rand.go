// Package testutil provides deterministic fakes shared by package tests.
package testutil

// Draw records one UniformInt call made against a ScriptedRand.
type Draw struct {
	Min, Max, Result int
}

// ScriptedRand is a dice.Rand that replays a fixed sequence of values.
//
// Each UniformInt call consumes the next scripted value and clamps it into
// [min, max]. Once the script is exhausted every call returns min.
type ScriptedRand struct {
	values []int
	Draws  []Draw
}

// NewScriptedRand returns a ScriptedRand that replays values in order.
func NewScriptedRand(values ...int) *ScriptedRand {
	return &ScriptedRand{values: values}
}

// UniformInt returns the next scripted value clamped into [min, max].
func (s *ScriptedRand) UniformInt(min, max int) int {
	v := min
	if len(s.values) > 0 {
		v = s.values[0]
		s.values = s.values[1:]
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	s.Draws = append(s.Draws, Draw{Min: min, Max: max, Result: v})
	return v
}

// Remaining reports how many scripted values have not been consumed.
func (s *ScriptedRand) Remaining() int { return len(s.values) }

// FixedRand always returns the same value, clamped into [min, max].
type FixedRand int

// UniformInt returns the fixed value clamped into [min, max].
func (f FixedRand) UniformInt(min, max int) int {
	v := int(f)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
