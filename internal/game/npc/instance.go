package npc

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/noahsark/internal/game/progress"
)

// Type classifies an encounter.
type Type int

const (
	Normal Type = iota
	Elite
	Boss
)

// String returns the display name of the type.
func (t Type) String() string {
	switch t {
	case Elite:
		return "Elite"
	case Boss:
		return "Boss"
	default:
		return "Normal"
	}
}

// Monster is the enemy of one encounter. It is created per encounter and
// discarded when the battle ends.
//
// Invariant: 0 <= HP <= MaxHP; Attack >= 0.
type Monster struct {
	// ID uniquely identifies this encounter.
	ID   string
	Name string
	Type Type
	// BossID is set for tracked story bosses.
	BossID    progress.Boss
	HP        int
	MaxHP     int
	Attack    int
	MoneyDrop int
	// Intro is the line the monster opens the fight with, if any.
	Intro string
}

// NewMonster creates a monster at full HP.
//
// Postcondition: HP == MaxHP == max(hp, 1); Attack == max(attack, 0).
func NewMonster(name string, typ Type, hp, attack, money int) *Monster {
	if hp < 1 {
		hp = 1
	}
	if attack < 0 {
		attack = 0
	}
	return &Monster{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      typ,
		HP:        hp,
		MaxHP:     hp,
		Attack:    attack,
		MoneyDrop: money,
	}
}

// IsDead reports whether the monster has zero hit points.
func (m *Monster) IsDead() bool {
	return m.HP <= 0
}

// ApplyDamage reduces HP by amount, flooring at zero. Non-positive amounts are ignored.
func (m *Monster) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}
}

// Weaken scales attack and HP by factor with truncation; MaxHP becomes the new HP.
//
// Precondition: 0 < factor <= 1.
func (m *Monster) Weaken(factor float64) {
	m.Attack = int(float64(m.Attack) * factor)
	m.HP = int(float64(m.HP) * factor)
	m.MaxHP = m.HP
}

// HealthDescription returns a visible health state string for status output.
//
// Postcondition: Returns a non-empty string.
func (m *Monster) HealthDescription() string {
	if m.HP <= 0 {
		return "defeated"
	}
	pct := float64(m.HP) / float64(m.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
