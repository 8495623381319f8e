package combat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/skill"
)

// Battle is one encounter between the party and a single monster.
//
// A Battle is not safe for concurrent use and runs at most once.
type Battle struct {
	cfg       Config
	party     character.Party
	monster   *npc.Monster
	state     *progress.State
	inv       *inventory.Inventory
	rng       dice.Rand
	decider   Decider
	presenter Presenter
	logger    *zap.Logger

	cooldowns *skill.Tracker
	phase     Phase
	round     int
	outcome   Outcome
}

// Option configures optional Battle collaborators.
type Option func(*Battle)

// WithInventory lets player-controlled members use items from inv.
func WithInventory(inv *inventory.Inventory) Option {
	return func(b *Battle) { b.inv = inv }
}

// WithDecider sets the input collaborator for player-controlled members.
func WithDecider(d Decider) Option {
	return func(b *Battle) { b.decider = d }
}

// WithPresenter sets the presentation collaborator.
func WithPresenter(p Presenter) Option {
	return func(b *Battle) { b.presenter = p }
}

// NewBattle prepares a battle. The party, monster and state are mutated in place by Run.
//
// Precondition: monster, state, rng and logger must be non-nil.
// Postcondition: Returns an error if a player-controlled member exists but no Decider was supplied.
func NewBattle(cfg Config, party character.Party, monster *npc.Monster, state *progress.State, rng dice.Rand, logger *zap.Logger, opts ...Option) (*Battle, error) {
	b := &Battle{
		cfg:       cfg,
		party:     party,
		monster:   monster,
		state:     state,
		rng:       rng,
		presenter: nopPresenter{},
		logger:    logger,
		cooldowns: skill.NewTracker(),
		phase:     PhaseSetup,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.decider == nil {
		for _, c := range party {
			if c.Controlled {
				return nil, fmt.Errorf("combat: %s is player controlled but no decider was supplied", c.Name)
			}
		}
	}
	for _, c := range party {
		b.cooldowns.Track(c.ID, c.Skills)
	}
	return b, nil
}

// Phase returns the current state of the machine.
func (b *Battle) Phase() Phase { return b.phase }

// Round returns the current round number, starting at 1.
func (b *Battle) Round() int { return b.round }

// Run drives the battle to Victory or Defeat.
//
// Postcondition: On success the returned Outcome has a terminal Phase. Errors
// are a cancelled ctx, a Decider failure, or ErrRoundLimit; the party and
// monster keep whatever state they reached.
func (b *Battle) Run(ctx context.Context) (Outcome, error) {
	if b.round > 0 {
		return b.outcome, fmt.Errorf("combat: battle already run")
	}
	b.setup()

	for b.round = 1; ; b.round++ {
		if b.cfg.MaxRounds > 0 && b.round > b.cfg.MaxRounds {
			b.logger.Warn("battle round limit reached", zap.Int("max_rounds", b.cfg.MaxRounds))
			return b.outcome, ErrRoundLimit
		}
		if err := ctx.Err(); err != nil {
			return b.outcome, err
		}

		b.enter(PhaseRoundStart)
		b.emit(Event{Kind: EventRoundStart, Target: b.monster.Name, Amount: b.monster.HP})

		b.enter(PhaseParty)
		won, err := b.partyPhase(ctx)
		if err != nil {
			return b.outcome, err
		}
		if won {
			return b.victory(), nil
		}

		b.enter(PhaseRetaliation)
		b.retaliate()

		b.enter(PhaseCooldownTick)
		b.cooldowns.Tick()

		if b.party.Defeated() {
			return b.defeat(), nil
		}
	}
}

// setup clears buffs, resets cooldowns and applies the one-shot clue discount.
func (b *Battle) setup() {
	b.party.ClearBuffs()
	b.cooldowns.Reset()

	b.logger.Info("battle started",
		zap.String("monster", b.monster.Name),
		zap.Stringer("type", b.monster.Type),
		zap.Int("hp", b.monster.HP),
		zap.Int("attack", b.monster.Attack),
		zap.Int("party", len(b.party)),
	)
	b.emit(Event{Kind: EventBattleStart, Actor: b.monster.Name, Quote: b.monster.Intro, Detail: b.monster.Type.String()})

	var (
		cost   int
		factor float64
	)
	switch b.monster.Type {
	case npc.Boss:
		cost, factor = b.cfg.BossClueCost, b.cfg.BossDiscount
	case npc.Elite:
		cost, factor = b.cfg.EliteClueCost, b.cfg.EliteDiscount
	default:
		return
	}
	if !b.state.SpendClues(cost) {
		return
	}
	b.monster.Weaken(factor)
	b.outcome.Discounted = true
	b.outcome.CluesSpent = cost
	b.logger.Debug("clue discount applied",
		zap.Int("clues_spent", cost),
		zap.Float64("factor", factor),
		zap.Int("hp", b.monster.HP),
		zap.Int("attack", b.monster.Attack),
	)
	b.emit(Event{Kind: EventDiscount, Target: b.monster.Name, Amount: cost})
}

func (b *Battle) victory() Outcome {
	b.enter(PhaseVictory)
	m := b.monster
	exp := b.cfg.Rewards.ExpFor(m)

	b.state.AddMoney(m.MoneyDrop)
	b.outcome.Money = m.MoneyDrop
	b.outcome.Exp = exp
	var quote, speaker string
	for _, c := range b.party.Alive() {
		if quote == "" {
			if q := c.Quote(ruleset.QuoteWin); q != "" {
				quote, speaker = q, c.Name
			}
		}
		for _, up := range c.BeatMonster(exp) {
			b.outcome.LevelUps = append(b.outcome.LevelUps, LevelUpRecord{MemberID: c.ID, Name: c.Name, Level: up.Level})
		}
	}
	if m.BossID != "" {
		b.state.MarkDefeated(m.BossID)
		b.outcome.DefeatedBoss = m.BossID
		b.outcome.Advance = true
	}
	b.outcome.Phase = PhaseVictory
	b.outcome.Rounds = b.round

	b.emit(Event{Kind: EventVictory, Actor: speaker, Target: m.Name, Amount: m.MoneyDrop, Quote: quote})
	for _, up := range b.outcome.LevelUps {
		b.emit(Event{Kind: EventLevelUp, Actor: up.Name, Amount: up.Level})
	}
	b.logger.Info("battle won",
		zap.String("monster", m.Name),
		zap.Int("rounds", b.round),
		zap.Int("money", m.MoneyDrop),
		zap.Int("exp", exp),
		zap.String("boss", string(m.BossID)),
	)
	return b.outcome
}

func (b *Battle) defeat() Outcome {
	b.enter(PhaseDefeat)
	b.outcome.Phase = PhaseDefeat
	b.outcome.Rounds = b.round
	b.emit(Event{Kind: EventDefeat, Actor: b.monster.Name})
	b.logger.Info("battle lost", zap.String("monster", b.monster.Name), zap.Int("rounds", b.round))
	return b.outcome
}

func (b *Battle) enter(p Phase) {
	b.phase = p
	b.logger.Debug("battle phase", zap.Int("round", b.round), zap.Stringer("phase", p))
}

func (b *Battle) emit(e Event) {
	e.Round = b.round
	e.Phase = b.phase
	b.presenter.Notify(e)
}
