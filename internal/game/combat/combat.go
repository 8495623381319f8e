// Package combat implements the round-based battle state machine between the party and one monster.
package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
)

// ErrRoundLimit is returned by Run when Config.MaxRounds rounds pass without a result.
var ErrRoundLimit = errors.New("combat: round limit reached")

// Phase is a state of the battle state machine.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRoundStart
	PhaseParty
	PhaseRetaliation
	PhaseCooldownTick
	PhaseVictory
	PhaseDefeat
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRoundStart:
		return "round start"
	case PhaseParty:
		return "party"
	case PhaseRetaliation:
		return "retaliation"
	case PhaseCooldownTick:
		return "cooldown tick"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the battle ends in p.
func (p Phase) Terminal() bool { return p == PhaseVictory || p == PhaseDefeat }

// Config holds the tunable battle constants.
type Config struct {
	// BossClueCost and EliteClueCost are the clues consumed to weaken a boss or elite.
	BossClueCost  int `mapstructure:"boss_clue_cost"`
	EliteClueCost int `mapstructure:"elite_clue_cost"`
	// BossDiscount and EliteDiscount scale the weakened monster's HP and attack.
	BossDiscount  float64     `mapstructure:"boss_discount"`
	EliteDiscount float64     `mapstructure:"elite_discount"`
	Rewards       npc.Rewards `mapstructure:"rewards"`
	// NPCSkillChance is the percent chance a non-player member uses a skill.
	NPCSkillChance int `mapstructure:"npc_skill_chance"`
	// JitterLow and JitterHigh bound the normal attack damage as fractions of Attack().
	JitterLow  float64 `mapstructure:"jitter_low"`
	JitterHigh float64 `mapstructure:"jitter_high"`
	// MaxRounds stops a runaway battle; zero means unlimited.
	MaxRounds int `mapstructure:"max_rounds"`
}

// DefaultConfig returns the standard battle constants.
func DefaultConfig() Config {
	return Config{
		BossClueCost:   5,
		EliteClueCost:  3,
		BossDiscount:   0.7,
		EliteDiscount:  0.8,
		Rewards:        npc.DefaultRewards,
		NPCSkillChance: 60,
		JitterLow:      0.8,
		JitterHigh:     1.2,
	}
}

// Validate checks all battle constants.
//
// Postcondition: Returns nil if the constants are usable, or an error describing all violations.
func (c Config) Validate() error {
	var errs []error
	if c.BossClueCost < 0 || c.EliteClueCost < 0 {
		errs = append(errs, fmt.Errorf("clue costs must be >= 0, got boss=%d elite=%d", c.BossClueCost, c.EliteClueCost))
	}
	if c.BossDiscount <= 0 || c.BossDiscount > 1 || c.EliteDiscount <= 0 || c.EliteDiscount > 1 {
		errs = append(errs, fmt.Errorf("discounts must be in (0,1], got boss=%v elite=%v", c.BossDiscount, c.EliteDiscount))
	}
	if err := c.Rewards.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.NPCSkillChance < 0 || c.NPCSkillChance > 100 {
		errs = append(errs, fmt.Errorf("npc_skill_chance must be in [0,100], got %d", c.NPCSkillChance))
	}
	if c.JitterLow < 0 || c.JitterHigh < c.JitterLow {
		errs = append(errs, fmt.Errorf("jitter must satisfy 0 <= low <= high, got low=%v high=%v", c.JitterLow, c.JitterHigh))
	}
	if c.MaxRounds < 0 {
		errs = append(errs, fmt.Errorf("max_rounds must be >= 0, got %d", c.MaxRounds))
	}
	return errors.Join(errs...)
}

// LevelUpRecord notes one level gained by a party member on victory.
type LevelUpRecord struct {
	MemberID string
	Name     string
	Level    int
}

// Outcome is the structured result of a finished battle.
type Outcome struct {
	// Phase is PhaseVictory or PhaseDefeat.
	Phase  Phase
	Rounds int
	// Discounted is true when clues were spent to weaken the monster.
	Discounted bool
	CluesSpent int
	Money      int
	Exp        int
	LevelUps   []LevelUpRecord
	// DefeatedBoss is set when a tracked story boss fell.
	DefeatedBoss progress.Boss
	// Advance tells the narrative shell to move the story forward.
	Advance bool
}

// Won reports whether the party won.
func (o Outcome) Won() bool { return o.Phase == PhaseVictory }

// Turn is the view of the battle handed to a Decider.
type Turn struct {
	Round   int
	Actor   *character.Character
	Party   character.Party
	Monster *npc.Monster
}
