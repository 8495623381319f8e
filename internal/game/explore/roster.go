package explore

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/noahsark/internal/game/character"
)

var (
	// ErrInvalidSelection is returned when a roster index is out of range.
	ErrInvalidSelection = errors.New("explore: invalid selection")
	// ErrLeaderSwap is returned when the player-controlled leader is chosen to leave the party.
	ErrLeaderSwap = errors.New("explore: the leader cannot be swapped out")
	// ErrEmptyReserve is returned by Swap when nobody is waiting in reserve.
	ErrEmptyReserve = errors.New("explore: reserve is empty")
)

// Roster holds the active party and the members waiting in reserve.
//
// Invariant: len(Party()) <= character.MaxPartySize; a name appears at most once
// across party and reserve.
type Roster struct {
	party   character.Party
	reserve []*character.Character
}

// NewRoster creates a roster whose party is members, in order.
//
// Precondition: len(members) <= character.MaxPartySize.
func NewRoster(members ...*character.Character) *Roster {
	return &Roster{party: append(character.Party(nil), members...)}
}

// Party returns the active party. The slice is shared; do not append to it.
func (r *Roster) Party() character.Party { return r.party }

// Reserve returns the waiting members. The slice is shared; do not append to it.
func (r *Roster) Reserve() []*character.Character { return r.reserve }

// Has reports whether a member named name is in the party or the reserve.
func (r *Roster) Has(name string) bool {
	for _, c := range r.party {
		if c.Name == name {
			return true
		}
	}
	for _, c := range r.reserve {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Add places c in the party when there is room, otherwise in the reserve.
//
// Postcondition: Returns true iff c joined the party.
func (r *Roster) Add(c *character.Character) bool {
	if len(r.party) < character.MaxPartySize {
		r.party = append(r.party, c)
		return true
	}
	r.reserve = append(r.reserve, c)
	return false
}

// Swap benches party member out and brings reserve member in. Both leave
// their list and are appended to the end of the other one.
//
// Precondition: out indexes Party(); in indexes Reserve().
// Postcondition: On error the roster is unchanged.
func (r *Roster) Swap(out, in int) error {
	if len(r.reserve) == 0 {
		return ErrEmptyReserve
	}
	if out < 0 || out >= len(r.party) {
		return fmt.Errorf("%w: party index %d out of range [0,%d)", ErrInvalidSelection, out, len(r.party))
	}
	if in < 0 || in >= len(r.reserve) {
		return fmt.Errorf("%w: reserve index %d out of range [0,%d)", ErrInvalidSelection, in, len(r.reserve))
	}
	leaving := r.party[out]
	if leaving.Controlled {
		return fmt.Errorf("%w: %s", ErrLeaderSwap, leaving.Name)
	}
	joining := r.reserve[in]

	r.party = append(r.party[:out:out], r.party[out+1:]...)
	r.reserve = append(r.reserve[:in:in], r.reserve[in+1:]...)
	r.party = append(r.party, joining)
	r.reserve = append(r.reserve, leaving)
	return nil
}
