// Package skill implements the polymorphic skill effects and the per-skill
// cooldown bookkeeping used by party members in battle.
package skill

import "math"

// Stat selects which caster attribute an AttackEffect scales from.
type Stat string

const (
	StatPower     Stat = "power"
	StatKnowledge Stat = "knowledge"
	StatLuck      Stat = "luck"
)

// Kind is the discriminant of an Effect variant.
type Kind string

const (
	KindAttack Kind = "attack"
	KindHeal   Kind = "heal"
)

// Caster is the view of the acting character an Effect reads from.
type Caster interface {
	// Attack returns power plus the transient buff.
	Attack() int
	Knowledge() int
	Luck() int
}

// Member is a party member an Effect may heal.
type Member interface {
	IsAlive() bool
	// Heal adds amount hit points clamped to the maximum and returns the HP actually restored.
	Heal(amount int) int
}

// Effect computes a skill's outcome.
type Effect interface {
	Kind() Kind
	// Apply resolves the effect and returns the offensive damage it produced.
	//
	// Postcondition: Returns >= 0.
	Apply(caster Caster, party []Member) int
}

// AttackEffect deals floor(stat × Multiplier) + Flat damage.
type AttackEffect struct {
	Stat       Stat
	Multiplier float64
	Flat       int
}

// Kind returns KindAttack.
func (AttackEffect) Kind() Kind { return KindAttack }

// Apply returns the damage for caster; party is ignored.
func (e AttackEffect) Apply(caster Caster, _ []Member) int {
	var base int
	switch e.Stat {
	case StatKnowledge:
		base = caster.Knowledge()
	case StatLuck:
		base = caster.Luck()
	default:
		base = caster.Attack()
	}
	dmg := int(math.Floor(float64(base)*e.Multiplier)) + e.Flat
	if dmg < 0 {
		return 0
	}
	return dmg
}

// HealEffect restores Flat + floor(knowledge × KnowledgeMultiplier) HP to every
// living party member.
type HealEffect struct {
	Flat                int
	KnowledgeMultiplier float64
}

// Kind returns KindHeal.
func (HealEffect) Kind() Kind { return KindHeal }

// Amount returns the per-member heal for caster.
func (e HealEffect) Amount(caster Caster) int {
	return e.Flat + int(math.Floor(float64(caster.Knowledge())*e.KnowledgeMultiplier))
}

// Apply heals every living member of party and returns 0.
//
// Postcondition: dead members are untouched.
func (e HealEffect) Apply(caster Caster, party []Member) int {
	amount := e.Amount(caster)
	for _, m := range party {
		if m.IsAlive() {
			m.Heal(amount)
		}
	}
	return 0
}

// Skill is one ability owned by a character.
//
// Invariant: 0 <= Cooldown() <= MaxCooldown.
type Skill struct {
	Name        string
	Description string
	MaxCooldown int
	Effect      Effect

	cooldown int
}

// New creates a ready Skill.
//
// Precondition: maxCooldown >= 0; effect must be non-nil.
func New(name, description string, maxCooldown int, effect Effect) *Skill {
	if maxCooldown < 0 {
		maxCooldown = 0
	}
	return &Skill{Name: name, Description: description, MaxCooldown: maxCooldown, Effect: effect}
}

// Cooldown returns the number of rounds before the skill is ready again.
func (s *Skill) Cooldown() int { return s.cooldown }

// Ready reports whether the skill can be used this turn.
func (s *Skill) Ready() bool { return s.cooldown == 0 }

// Use resolves the effect and starts the cooldown.
//
// Precondition: Ready() is true; callers reject unready skills before calling.
// Postcondition: Cooldown() == MaxCooldown.
func (s *Skill) Use(caster Caster, party []Member) int {
	result := s.Effect.Apply(caster, party)
	s.cooldown = s.MaxCooldown
	return result
}

// Tick decrements the cooldown by one, flooring at zero.
func (s *Skill) Tick() {
	if s.cooldown > 0 {
		s.cooldown--
	}
}

// Reset makes the skill ready immediately.
func (s *Skill) Reset() { s.cooldown = 0 }
