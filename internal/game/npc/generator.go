package npc

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/world"
)

// ErrEmptyParty is returned when generating against a party with no members.
var ErrEmptyParty = errors.New("npc: party is empty")

// BossFlags reports which story bosses have fallen.
type BossFlags interface {
	Defeated(b progress.Boss) bool
}

// Generator builds one monster per encounter.
type Generator struct {
	table  *Table
	rng    dice.Rand
	logger *zap.Logger
}

// NewGenerator creates a Generator over table.
//
// Precondition: table must be valid; rng and logger must be non-nil.
func NewGenerator(table *Table, rng dice.Rand, logger *zap.Logger) *Generator {
	return &Generator{table: table, rng: rng, logger: logger}
}

// Base is the unscaled stat line derived from party strength and location.
type Base struct {
	HP, Attack, Money int
}

// BaseStats computes the encounter base line.
//
// avg = mean(Attack + HP/10) over every member;
// HP = (100 + 4·avg)·EnemyStatMod; Attack = (15 + avg/3)·EnemyStatMod;
// Money = 50·MoneyDropMod. Each product truncates.
func BaseStats(party character.Party, loc *world.Location) Base {
	avg := party.AverageStrength()
	return Base{
		HP:     int(float64(100+avg*4) * loc.EnemyStatMod),
		Attack: int(float64(15+avg/3) * loc.EnemyStatMod),
		Money:  int(50 * loc.MoneyDropMod),
	}
}

func (b Base) scaled(s Scale) (hp, atk, money int) {
	return int(float64(b.HP) * s.HP), int(float64(b.Attack) * s.Attack), int(float64(b.Money) * s.Money)
}

// Generate builds the monster for an encounter at loc.
//
// Boss entries are checked in table order; a boss roll is drawn only when the
// party is at the boss's location and the boss is repeatable or not yet
// defeated, and the first roll within Chance wins. Otherwise one [1,100] roll
// above EliteAbove yields an Elite, anything else a Normal; the name is drawn
// uniformly from the tier's pool.
//
// Precondition: loc and flags must be non-nil.
// Postcondition: Returns ErrEmptyParty without drawing when party is empty.
func (g *Generator) Generate(party character.Party, loc *world.Location, flags BossFlags) (*Monster, error) {
	if len(party) == 0 {
		return nil, ErrEmptyParty
	}
	base := BaseStats(party, loc)

	for _, b := range g.table.Bosses {
		if b.Location != loc.ID || (!b.Repeatable && flags.Defeated(b.ID)) {
			continue
		}
		if g.rng.UniformInt(1, 100) > b.Chance {
			continue
		}
		hp, atk, money := base.scaled(b.Scale)
		m := NewMonster(b.Name, Boss, hp, atk, money)
		m.BossID = b.ID
		m.Intro = b.Intro
		g.log(m, loc)
		return m, nil
	}

	tier, typ := g.table.Normal, Normal
	if g.rng.UniformInt(1, 100) > g.table.EliteAbove {
		tier, typ = g.table.Elite, Elite
	}
	name := tier.Names[g.rng.UniformInt(0, len(tier.Names)-1)]
	hp, atk, money := base.scaled(tier.Scale)
	m := NewMonster(name, typ, hp, atk, money)
	g.log(m, loc)
	return m, nil
}

func (g *Generator) log(m *Monster, loc *world.Location) {
	g.logger.Debug("monster generated",
		zap.String("id", m.ID),
		zap.String("name", m.Name),
		zap.Stringer("type", m.Type),
		zap.Int("location", loc.ID),
		zap.Int("hp", m.HP),
		zap.Int("attack", m.Attack),
		zap.Int("money", m.MoneyDrop),
	)
}
