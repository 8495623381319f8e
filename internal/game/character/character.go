// Package character defines the party member stat model, leveling, and skill use.
package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/skill"
)

// CritMultiplier scales a positive skill result on a critical hit.
const CritMultiplier = 1.5

var (
	// ErrInvalidSelection is returned when a skill index is out of range or the skill is cooling down.
	ErrInvalidSelection = errors.New("invalid skill selection")
	// ErrNoReadySkill is returned by UseRandomSkill when every skill is cooling down.
	ErrNoReadySkill = errors.New("no ready skill")
)

// Stats are the base attributes a character is created with.
type Stats struct {
	MaxHP     int
	Power     int
	Knowledge int
	Luck      int
}

// Character is a party member.
//
// Invariant: 0 <= HP() <= MaxHP(); Level() >= 1; 0 <= Exp() < ExpThreshold(Level())
// after every BeatMonster call.
type Character struct {
	ID          string
	Name        string
	ArchetypeID string
	// Controlled is true when a human chooses this character's actions.
	Controlled bool
	Skills     []*skill.Skill
	Quotes     map[string]string

	hp, maxHP  int
	level, exp int
	power      int
	knowledge  int
	luck       int
	buff       int
	growth     ruleset.Growth
}

// New creates a character at level with full HP and the entry experience of that level.
//
// Precondition: level >= 1; stats.MaxHP >= 1.
// Postcondition: HP() == MaxHP(); Exp() == ExpThreshold(level-1).
func New(name string, level int, stats Stats, growth ruleset.Growth, controlled bool) *Character {
	if level < 1 {
		level = 1
	}
	return &Character{
		ID:         uuid.New().String(),
		Name:       name,
		Controlled: controlled,
		hp:         stats.MaxHP,
		maxHP:      stats.MaxHP,
		level:      level,
		exp:        ExpThreshold(level - 1),
		power:      stats.Power,
		knowledge:  stats.Knowledge,
		luck:       stats.Luck,
		growth:     growth,
		Quotes:     map[string]string{},
	}
}

// Build creates a character from recruit content. Base stats are
// level × archetype growth plus the recruit's flat bonus.
//
// Precondition: rc and arch must be non-nil and rc.ArchetypeID == arch.ID.
// Postcondition: Returns a character owning freshly built skills, or an error.
func Build(rc *ruleset.Recruit, arch *ruleset.Archetype) (*Character, error) {
	if rc == nil || arch == nil {
		return nil, errors.New("character: recruit and archetype must not be nil")
	}
	if rc.ArchetypeID != arch.ID {
		return nil, fmt.Errorf("character: recruit %q expects archetype %q, got %q", rc.ID, rc.ArchetypeID, arch.ID)
	}
	lv := rc.StartLevel()
	g := arch.Growth
	stats := Stats{
		MaxHP:     lv*g.HP + rc.Bonus.HP,
		Power:     lv*g.Power + rc.Bonus.Power,
		Knowledge: lv*g.Knowledge + rc.Bonus.Knowledge,
		Luck:      lv*g.Luck + rc.Bonus.Luck,
	}
	c := New(rc.Name, lv, stats, g, arch.Controlled)
	c.ArchetypeID = arch.ID
	for _, d := range rc.Skills {
		s, err := d.Build()
		if err != nil {
			return nil, fmt.Errorf("character: building %q: %w", rc.ID, err)
		}
		c.Skills = append(c.Skills, s)
	}
	for k, v := range rc.Quotes {
		c.Quotes[k] = v
	}
	return c, nil
}

func (c *Character) HP() int        { return c.hp }
func (c *Character) MaxHP() int     { return c.maxHP }
func (c *Character) Level() int     { return c.level }
func (c *Character) Exp() int       { return c.exp }
func (c *Character) Power() int     { return c.power }
func (c *Character) Knowledge() int { return c.knowledge }
func (c *Character) Luck() int      { return c.luck }
func (c *Character) Buff() int      { return c.buff }

// Attack returns power plus the transient buff.
func (c *Character) Attack() int { return c.power + c.buff }

// Speed is the dodge stat; it equals luck.
func (c *Character) Speed() int { return c.luck }

// IsAlive reports whether HP is above zero.
func (c *Character) IsAlive() bool { return c.hp > 0 }

// AddBuff adds n to the transient buff.
func (c *Character) AddBuff(n int) { c.buff += n }

// ClearBuff resets the transient buff to zero.
func (c *Character) ClearBuff() { c.buff = 0 }

// SetHP sets HP clamped into [0, MaxHP].
func (c *Character) SetHP(v int) {
	switch {
	case v < 0:
		c.hp = 0
	case v > c.maxHP:
		c.hp = c.maxHP
	default:
		c.hp = v
	}
}

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Precondition: amount >= 0.
func (c *Character) ApplyDamage(amount int) { c.SetHP(c.hp - amount) }

// Heal adds amount HP clamped to MaxHP and returns the HP actually restored.
func (c *Character) Heal(amount int) int {
	before := c.hp
	c.SetHP(c.hp + amount)
	return c.hp - before
}

// Quote returns the line the character says for key, or "".
func (c *Character) Quote(key string) string { return c.Quotes[key] }

// ReadySkills returns the indices of ready skills in roster order.
func (c *Character) ReadySkills() []int {
	var out []int
	for i, s := range c.Skills {
		if s.Ready() {
			out = append(out, i)
		}
	}
	return out
}

// SkillResult describes one resolved skill use.
type SkillResult struct {
	Index    int
	Skill    *skill.Skill
	Damage   int
	Critical bool
}

// PerformSkill uses the skill at idx on behalf of c.
//
// The effect resolves, the cooldown starts, then a positive result becomes a
// critical hit (×1.5, floored) when UniformInt(1,100) <= Luck().
//
// Precondition: party contains c.
// Postcondition: On error nothing is mutated and no random draw is made.
func (c *Character) PerformSkill(idx int, party Party, rng dice.Rand) (SkillResult, error) {
	if idx < 0 || idx >= len(c.Skills) {
		return SkillResult{}, fmt.Errorf("%w: skill index %d out of range [0,%d)", ErrInvalidSelection, idx, len(c.Skills))
	}
	s := c.Skills[idx]
	if !s.Ready() {
		return SkillResult{}, fmt.Errorf("%w: %q is cooling down (%d)", ErrInvalidSelection, s.Name, s.Cooldown())
	}
	res := SkillResult{Index: idx, Skill: s, Damage: s.Use(c, party.Members())}
	if res.Damage > 0 && rng.UniformInt(1, 100) <= c.luck {
		res.Damage = int(float64(res.Damage) * CritMultiplier)
		res.Critical = true
	}
	return res, nil
}

// UseRandomSkill performs a uniformly chosen ready skill.
//
// Postcondition: Returns ErrNoReadySkill without drawing when nothing is ready.
func (c *Character) UseRandomSkill(party Party, rng dice.Rand) (SkillResult, error) {
	ready := c.ReadySkills()
	if len(ready) == 0 {
		return SkillResult{}, ErrNoReadySkill
	}
	return c.PerformSkill(ready[rng.UniformInt(0, len(ready)-1)], party, rng)
}
