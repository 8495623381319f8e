package character

import "github.com/cory-johannsen/noahsark/internal/game/skill"

// MaxPartySize is the number of active party slots.
const MaxPartySize = 4

// Party is the ordered list of active members. Index 0 is the leader.
type Party []*Character

// Members adapts the party for skill effects.
func (p Party) Members() []skill.Member {
	out := make([]skill.Member, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// Alive returns the living members in order.
func (p Party) Alive() []*Character {
	var out []*Character
	for _, c := range p {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// Defeated reports whether every member is down. An empty party is defeated.
func (p Party) Defeated() bool {
	return len(p.Alive()) == 0
}

// AverageStrength returns the integer mean of Attack() + HP()/10 over every
// member, living or not, or 0 for an empty party.
func (p Party) AverageStrength() int {
	if len(p) == 0 {
		return 0
	}
	total := 0
	for _, c := range p {
		total += c.Attack() + c.HP()/10
	}
	return total / len(p)
}

// ClearBuffs resets every member's transient buff.
func (p Party) ClearBuffs() {
	for _, c := range p {
		c.ClearBuff()
	}
}
