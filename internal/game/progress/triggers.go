package progress

// Trigger is a clue-gated chapter transition.
type Trigger struct {
	From     int
	To       int
	Cost     int
	Location int // -1 matches any location
}

// DefaultTriggers are the early-game chapter transitions.
var DefaultTriggers = []Trigger{
	{From: 0, To: 1, Cost: 1, Location: -1},
	{From: 1, To: 2, Cost: 3, Location: 1},
	{From: 2, To: 3, Cost: 5, Location: 2},
}

// CheckTriggers applies every trigger whose conditions hold, in order, and
// returns the chapters entered.
//
// Postcondition: each applied trigger consumed its clue cost exactly once.
func (s *State) CheckTriggers(triggers []Trigger) []int {
	var entered []int
	for _, t := range triggers {
		if s.Chapter != t.From || s.Clues < t.Cost {
			continue
		}
		if t.Location >= 0 && s.LocationID != t.Location {
			continue
		}
		s.Clues -= t.Cost
		s.Chapter = t.To
		entered = append(entered, t.To)
	}
	return entered
}
