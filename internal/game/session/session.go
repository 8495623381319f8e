// Package session holds one playthrough: the roster, the backpack, the story
// state and the collaborators that act on them. It performs no I/O; the shell
// supplies a Decider and Presenter for battles.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/explore"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/world"
	"github.com/cory-johannsen/noahsark/internal/scripting"
)

// ErrGameOver is returned when an encounter is requested after the whole party has fallen.
var ErrGameOver = errors.New("session: party defeated")

// Content is the loaded game data a session plays over.
type Content struct {
	Rules    *ruleset.Registry
	Items    *inventory.Registry
	World    *world.Manager
	Monsters *npc.Table
	Story    progress.Story
}

// Config holds new-game settings and the rules the session's collaborators run with.
type Config struct {
	StartingMoney int
	StartingItems map[string]int
	Companions    int
	Battle        combat.Config
	Explore       explore.Config
}

// Result is what the shell needs to know after a battle.
type Result struct {
	combat.Outcome
	// Chapters lists the narration of every chapter a boss victory opened.
	Chapters []progress.Chapter
	// Relocated is true when the story moved the party to a new location.
	Relocated bool
	// GameOver is true when no party member is left standing.
	GameOver bool
}

// Session is one playthrough. Reset starts it over.
type Session struct {
	cfg     Config
	content Content
	rng     dice.Rand
	logger  *zap.Logger
	events  *scripting.Manager

	shop         *inventory.Shop
	generator    *npc.Generator
	recruiter    *explore.Recruiter
	investigator *explore.Investigator

	Roster   *explore.Roster
	Backpack *inventory.Inventory
	State    *progress.State
}

// New validates cfg, wires events (which may be nil) to the session's state,
// and starts the first game.
//
// Precondition: every Content field, rng and logger must be non-nil.
// Postcondition: Returns a ready Session or an error describing what was invalid.
func New(cfg Config, content Content, events *scripting.Manager, rng dice.Rand, logger *zap.Logger) (*Session, error) {
	if content.Rules == nil || content.Items == nil || content.World == nil || content.Monsters == nil {
		return nil, errors.New("session: content is incomplete")
	}
	if err := cfg.Battle.Validate(); err != nil {
		return nil, fmt.Errorf("session: invalid battle config: %w", err)
	}
	recruiter := explore.NewRecruiter(content.Rules, rng)
	investigator, err := explore.NewInvestigator(cfg.Explore, recruiter, rng, logger)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		cfg:          cfg,
		content:      content,
		rng:          rng,
		logger:       logger,
		events:       events,
		shop:         inventory.NewShop(content.Items),
		generator:    npc.NewGenerator(content.Monsters, rng, logger),
		recruiter:    recruiter,
		investigator: investigator,
	}
	if events != nil {
		events.AddClues = func(delta int) { s.State.AddClues(delta) }
		events.AddMoney = func(delta int) { s.State.AddMoney(delta) }
		events.HealParty = s.healParty
		events.LocationID = func() int { return s.State.LocationID }
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetNarrator routes the lines random events speak to fn.
func (s *Session) SetNarrator(fn func(speaker, text string)) {
	if s.events != nil {
		s.events.Say = fn
	}
}

// Reset discards the current game and deals a fresh roster, backpack and story state.
//
// Postcondition: on error the previous game is left untouched.
func (s *Session) Reset() error {
	roster, err := s.recruiter.StartingRoster(s.cfg.Companions)
	if err != nil {
		return fmt.Errorf("session: building roster: %w", err)
	}
	backpack, err := inventory.NewStarting(s.content.Items, s.cfg.StartingItems)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.Roster = roster
	s.Backpack = backpack
	s.State = progress.New(s.cfg.StartingMoney, s.content.World.Start().ID)

	names := make([]string, 0, len(roster.Party()))
	for _, c := range roster.Party() {
		names = append(names, c.Name)
	}
	s.logger.Info("new game",
		zap.Strings("party", names),
		zap.Int("money", s.State.Money),
		zap.Int("location", s.State.LocationID),
	)
	return nil
}

// Party returns the active party.
func (s *Session) Party() character.Party { return s.Roster.Party() }

// Location returns the party's current location.
func (s *Session) Location() *world.Location {
	l, _ := s.content.World.Location(s.State.LocationID)
	return l
}

// Destinations returns every location in travel-menu order.
func (s *Session) Destinations() []*world.Location { return s.content.World.All() }

// Chapter returns the narration for chapter n.
func (s *Session) Chapter(n int) (progress.Chapter, bool) {
	ch, ok := s.content.Story[n]
	return ch, ok
}

// GameOver reports whether every party member is down.
func (s *Session) GameOver() bool { return s.Party().Defeated() }

// CheckStory applies any clue-gated chapter triggers and returns the
// narration of every chapter entered, in order.
func (s *Session) CheckStory() []progress.Chapter {
	return s.chapters(s.State.CheckTriggers(progress.DefaultTriggers))
}

func (s *Session) chapters(numbers []int) []progress.Chapter {
	var out []progress.Chapter
	for _, n := range numbers {
		s.logger.Info("chapter entered", zap.Int("chapter", n))
		if ch, ok := s.content.Story[n]; ok {
			out = append(out, ch)
		}
	}
	return out
}

// Encounter generates the monster for a battle at the current location.
func (s *Session) Encounter() (*npc.Monster, error) {
	if s.GameOver() {
		return nil, ErrGameOver
	}
	return s.generator.Generate(s.Party(), s.Location(), s.State)
}

// Fight runs a battle between the party and m. The backpack is always
// available to the party; opts supply the Decider and Presenter.
//
// Postcondition: a boss victory advances the story; Result.GameOver is set
// when the party was wiped out.
func (s *Session) Fight(ctx context.Context, m *npc.Monster, opts ...combat.Option) (Result, error) {
	opts = append([]combat.Option{combat.WithInventory(s.Backpack)}, opts...)
	b, err := combat.NewBattle(s.cfg.Battle, s.Party(), m, s.State, s.rng, s.logger, opts...)
	if err != nil {
		return Result{}, err
	}
	out, err := b.Run(ctx)
	res := Result{Outcome: out}
	if err != nil {
		return res, err
	}
	if out.Advance {
		adv := s.State.AdvanceAfter(out.DefeatedBoss)
		res.Chapters = s.chapters(adv.Chapters)
		res.Relocated = adv.Relocate
	}
	res.GameOver = s.GameOver()
	return res, nil
}

// Travel moves the party to the location with the given ID.
//
// Postcondition: Returns a wrapped world.ErrLocked and leaves the party in
// place when the chapter gate is not met.
func (s *Session) Travel(id int) (*world.Location, error) {
	l, err := s.content.World.Travel(id, s.State.Chapter)
	if err != nil {
		return nil, err
	}
	s.State.LocationID = l.ID
	s.logger.Info("travelled", zap.Int("location", l.ID), zap.String("name", l.Name))
	return l, nil
}

// Investigate searches the current location.
func (s *Session) Investigate() (explore.Report, error) {
	return s.investigator.Investigate(s.Location(), s.State, s.Roster)
}

// RandomEvent gives the scripted events a chance to fire at the current
// location and returns the ID of the event that ran.
func (s *Session) RandomEvent() (string, bool) {
	if s.events == nil {
		return "", false
	}
	return s.events.Trigger(s.State.LocationID)
}

// Catalog returns the items on sale.
func (s *Session) Catalog() []*inventory.ItemDef { return s.shop.Catalog() }

// Buy purchases catalogue entry idx with the party's money.
func (s *Session) Buy(idx int) (*inventory.ItemDef, error) {
	return s.shop.Buy(idx, s.State, s.Backpack)
}

// UseItem applies backpack slot to party member target outside battle.
//
// Postcondition: Returns false with no stock consumed when the item had no effect.
func (s *Session) UseItem(slot, target int) (bool, error) {
	party := s.Party()
	if target < 0 || target >= len(party) {
		return false, fmt.Errorf("%w: member %d out of range [0,%d)", inventory.ErrInvalidSelection, target, len(party))
	}
	return s.Backpack.Use(slot, party[target])
}

// Swap exchanges party member out with reserve member in.
func (s *Session) Swap(out, in int) error { return s.Roster.Swap(out, in) }

// healParty restores amount HP to every living member and returns the total restored.
func (s *Session) healParty(amount int) int {
	total := 0
	for _, c := range s.Party().Alive() {
		total += c.Heal(amount)
	}
	return total
}
