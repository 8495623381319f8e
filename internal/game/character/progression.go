package character

import "github.com/cory-johannsen/noahsark/internal/game/ruleset"

// ExpThreshold returns the experience needed to leave level: level² × 100.
func ExpThreshold(level int) int {
	return level * level * 100
}

// LevelUp records one level gained during BeatMonster.
type LevelUp struct {
	Level int
	Gain  ruleset.Growth
}

// BeatMonster grants expGain experience and resolves every level-up it triggers.
//
// Each level-up increments Level, subtracts the threshold that was crossed
// (the new level's entry threshold) and adds the archetype growth to
// MaxHP, HP, Power, Knowledge and Luck.
//
// Precondition: expGain >= 0.
// Postcondition: Exp() < ExpThreshold(Level()).
func (c *Character) BeatMonster(expGain int) []LevelUp {
	if expGain > 0 {
		c.exp += expGain
	}
	var ups []LevelUp
	for c.exp >= ExpThreshold(c.level) {
		c.level++
		c.exp -= ExpThreshold(c.level - 1)
		c.maxHP += c.growth.HP
		c.hp += c.growth.HP
		c.power += c.growth.Power
		c.knowledge += c.growth.Knowledge
		c.luck += c.growth.Luck
		ups = append(ups, LevelUp{Level: c.level, Gain: c.growth})
	}
	return ups
}
