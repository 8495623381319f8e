// Package progress holds the narrative shell's game state: chapter, money,
// clues and which bosses have fallen.
package progress

// Boss identifies a tracked story boss.
type Boss string

const (
	BossKir      Boss = "kir"
	BossVermouth Boss = "vermouth"
	BossVodka    Boss = "vodka"
	BossGin      Boss = "gin"
)

// FinalLocation is the location the party is moved to after Gin falls.
const FinalLocation = 7

// State is the mutable game state owned by the shell and passed by pointer
// into battles and events.
//
// Invariant: Money >= 0; Clues >= 0.
type State struct {
	Chapter    int
	Money      int
	Clues      int
	LocationID int
	defeated   map[Boss]bool
}

// New returns the state of a fresh game.
func New(money, location int) *State {
	return &State{Money: money, LocationID: location, defeated: map[Boss]bool{}}
}

// Spend deducts amount if the balance covers it and reports whether it did.
func (s *State) Spend(amount int) bool {
	if amount < 0 || s.Money < amount {
		return false
	}
	s.Money -= amount
	return true
}

// AddMoney adds delta to Money, flooring at zero.
func (s *State) AddMoney(delta int) {
	s.Money += delta
	if s.Money < 0 {
		s.Money = 0
	}
}

// AddClues adds delta to Clues, flooring at zero.
func (s *State) AddClues(delta int) {
	s.Clues += delta
	if s.Clues < 0 {
		s.Clues = 0
	}
}

// SpendClues consumes n clues if available and reports whether it did.
func (s *State) SpendClues(n int) bool {
	if n < 0 || s.Clues < n {
		return false
	}
	s.Clues -= n
	return true
}

// Defeated reports whether b has been beaten.
func (s *State) Defeated(b Boss) bool { return s.defeated[b] }

// MarkDefeated records that b has been beaten.
func (s *State) MarkDefeated(b Boss) {
	if s.defeated == nil {
		s.defeated = map[Boss]bool{}
	}
	s.defeated[b] = true
}

// Advance is the story transition produced by a boss victory.
type Advance struct {
	// Chapters lists every chapter entered, in order.
	Chapters []int
	// Relocate is true when the party must move to FinalLocation.
	Relocate bool
}

// AdvanceAfter marks b defeated and moves the chapter forward.
//
// Kir opens chapter 4, Vermouth 5, Vodka 6. Gin passes through 7 to the
// final chapter 8 and relocates the party.
func (s *State) AdvanceAfter(b Boss) Advance {
	s.MarkDefeated(b)
	var adv Advance
	switch b {
	case BossKir:
		adv.Chapters = []int{4}
	case BossVermouth:
		adv.Chapters = []int{5}
	case BossVodka:
		adv.Chapters = []int{6}
	case BossGin:
		adv.Chapters = []int{7, 8}
		adv.Relocate = true
		s.LocationID = FinalLocation
	default:
		return adv
	}
	s.Chapter = adv.Chapters[len(adv.Chapters)-1]
	return adv
}

// Finished reports whether the final chapter has been reached.
func (s *State) Finished() bool { return s.Chapter >= 8 }
