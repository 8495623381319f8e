package character_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/skill"
	"github.com/cory-johannsen/noahsark/internal/testutil"
)

var fighterGrowth = ruleset.Growth{HP: 100, Power: 10, Knowledge: 3, Luck: 5}

func newFighter(level int) *character.Character {
	return character.New("Makoto", level, character.Stats{
		MaxHP:     level * fighterGrowth.HP,
		Power:     level * fighterGrowth.Power,
		Knowledge: level * fighterGrowth.Knowledge,
		Luck:      level * fighterGrowth.Luck,
	}, fighterGrowth, false)
}

func TestExpThreshold(t *testing.T) {
	assert.Equal(t, 0, character.ExpThreshold(0))
	assert.Equal(t, 100, character.ExpThreshold(1))
	assert.Equal(t, 400, character.ExpThreshold(2))
	assert.Equal(t, 2500, character.ExpThreshold(5))
}

func TestNew_StartsAtPreviousThreshold(t *testing.T) {
	c := newFighter(3)
	assert.Equal(t, 3, c.Level())
	assert.Equal(t, 400, c.Exp())
	assert.Equal(t, 300, c.HP())
	assert.Equal(t, 300, c.MaxHP())
	assert.NotEmpty(t, c.ID)
}

func TestBeatMonster_SingleLevelUp(t *testing.T) {
	c := newFighter(1)
	ups := c.BeatMonster(150)
	require.Len(t, ups, 1)
	assert.Equal(t, 2, ups[0].Level)
	assert.Equal(t, 2, c.Level())
	assert.Equal(t, 50, c.Exp())
	assert.Equal(t, 200, c.MaxHP())
	assert.Equal(t, 20, c.Power())
	assert.Equal(t, 6, c.Knowledge())
	assert.Equal(t, 10, c.Luck())
}

func TestBeatMonster_MultipleLevelUps(t *testing.T) {
	c := newFighter(1)
	ups := c.BeatMonster(2000)
	// 2000 -100 (lv2) -400 (lv3) -900 (lv4) = 600 < 1600
	require.Len(t, ups, 3)
	assert.Equal(t, 4, c.Level())
	assert.Equal(t, 600, c.Exp())
}

func TestBeatMonster_LevelUpHealsByGrowth(t *testing.T) {
	c := newFighter(1)
	c.ApplyDamage(60)
	c.BeatMonster(100)
	assert.Equal(t, 140, c.HP())
	assert.Equal(t, 200, c.MaxHP())
}

func TestBeatMonster_Property_ExpBelowThreshold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newFighter(rapid.IntRange(1, 10).Draw(rt, "level"))
		gains := rapid.SliceOfN(rapid.IntRange(0, 5000), 1, 20).Draw(rt, "gains")
		for _, g := range gains {
			before := c.Level()
			c.BeatMonster(g)
			if c.Level() < before {
				rt.Fatalf("level decreased from %d to %d", before, c.Level())
			}
			if c.Exp() < 0 || c.Exp() >= character.ExpThreshold(c.Level()) {
				rt.Fatalf("exp %d outside [0,%d)", c.Exp(), character.ExpThreshold(c.Level()))
			}
		}
	})
}

func TestHP_Property_Clamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newFighter(rapid.IntRange(1, 5).Draw(rt, "level"))
		ops := rapid.SliceOfN(rapid.IntRange(-500, 500), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			if op < 0 {
				c.ApplyDamage(-op)
			} else {
				c.Heal(op)
			}
			if c.HP() < 0 || c.HP() > c.MaxHP() {
				rt.Fatalf("hp %d outside [0,%d]", c.HP(), c.MaxHP())
			}
		}
	})
}

func TestHeal_ReturnsRestored(t *testing.T) {
	c := newFighter(1)
	c.ApplyDamage(30)
	assert.Equal(t, 30, c.Heal(50))
	assert.Equal(t, 100, c.HP())
}

func TestAttackIncludesBuff(t *testing.T) {
	c := newFighter(2)
	c.AddBuff(7)
	assert.Equal(t, 27, c.Attack())
	c.ClearBuff()
	assert.Equal(t, 20, c.Attack())
	assert.Equal(t, c.Luck(), c.Speed())
}

func withSkills(c *character.Character, skills ...*skill.Skill) *character.Character {
	c.Skills = skills
	return c
}

func TestPerformSkill_CritWhenDrawWithinLuck(t *testing.T) {
	c := withSkills(newFighter(2), skill.New("Karate", "", 2,
		skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1.5, Flat: 0}))
	rng := testutil.NewScriptedRand(10)
	res, err := c.PerformSkill(0, character.Party{c}, rng)
	require.NoError(t, err)
	assert.True(t, res.Critical)
	assert.Equal(t, 45, res.Damage)
	assert.Equal(t, 2, c.Skills[0].Cooldown())
}

func TestPerformSkill_NoCritAboveLuck(t *testing.T) {
	c := withSkills(newFighter(2), skill.New("Karate", "", 2,
		skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1.5, Flat: 0}))
	rng := testutil.NewScriptedRand(11)
	res, err := c.PerformSkill(0, character.Party{c}, rng)
	require.NoError(t, err)
	assert.False(t, res.Critical)
	assert.Equal(t, 30, res.Damage)
}

func TestPerformSkill_HealDoesNotDrawCrit(t *testing.T) {
	c := withSkills(newFighter(1), skill.New("Care", "", 3, skill.HealEffect{Flat: 10}))
	ally := newFighter(1)
	ally.ApplyDamage(50)
	rng := testutil.NewScriptedRand()
	res, err := c.PerformSkill(0, character.Party{c, ally}, rng)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, 60, ally.HP())
	assert.Empty(t, rng.Draws)
}

func TestPerformSkill_InvalidSelection(t *testing.T) {
	c := withSkills(newFighter(1), skill.New("Karate", "", 2,
		skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1}))
	rng := testutil.NewScriptedRand()

	_, err := c.PerformSkill(3, character.Party{c}, rng)
	assert.True(t, errors.Is(err, character.ErrInvalidSelection))

	_, err = c.PerformSkill(0, character.Party{c}, rng)
	require.NoError(t, err)
	_, err = c.PerformSkill(0, character.Party{c}, rng)
	assert.True(t, errors.Is(err, character.ErrInvalidSelection))
	assert.Equal(t, 2, c.Skills[0].Cooldown())
}

func TestUseRandomSkill(t *testing.T) {
	a := skill.New("A", "", 1, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
	b := skill.New("B", "", 1, skill.AttackEffect{Stat: skill.StatKnowledge, Multiplier: 1})
	c := withSkills(newFighter(1), a, b)
	res, err := c.UseRandomSkill(character.Party{c}, testutil.NewScriptedRand(1, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, []int{0}, c.ReadySkills())

	_, err = c.UseRandomSkill(character.Party{c}, testutil.NewScriptedRand(0, 100))
	require.NoError(t, err)
	_, err = c.UseRandomSkill(character.Party{c}, testutil.NewScriptedRand())
	assert.ErrorIs(t, err, character.ErrNoReadySkill)

	tr := skill.NewTracker()
	tr.Track(c.Name, c.Skills)
	tr.Tick()
	assert.Equal(t, []int{0, 1}, c.ReadySkills())
}

func TestParty(t *testing.T) {
	a := newFighter(1) // atk 10, hp 100
	b := newFighter(2) // atk 20, hp 200
	b.SetHP(0)
	p := character.Party{a, b}
	// (10+10 + 20+0)/2
	assert.Equal(t, 20, p.AverageStrength())
	assert.Equal(t, []*character.Character{a}, p.Alive())
	assert.False(t, p.Defeated())
	a.ApplyDamage(1000)
	assert.True(t, p.Defeated())
	assert.Equal(t, 0, character.Party{}.AverageStrength())
	assert.Len(t, p.Members(), 2)
}

func TestBuild_FromContent(t *testing.T) {
	arch := &ruleset.Archetype{ID: "support", Name: "Support", Growth: ruleset.Growth{HP: 50, Power: 3, Knowledge: 15, Luck: 6}}
	rc := &ruleset.Recruit{
		ID: "sonoko", Name: "Sonoko", ArchetypeID: "support", Level: 2,
		Bonus:  ruleset.Growth{Luck: 20},
		Skills: []skill.Def{{Name: "Cheer", Kind: skill.KindHeal, Flat: 5, Cooldown: 2}},
		Quotes: map[string]string{ruleset.QuoteWin: "Easy!"},
	}
	c, err := character.Build(rc, arch)
	require.NoError(t, err)
	assert.Equal(t, "Sonoko", c.Name)
	assert.Equal(t, "support", c.ArchetypeID)
	assert.Equal(t, 100, c.MaxHP())
	assert.Equal(t, 32, c.Luck())
	assert.Equal(t, 100, c.Exp())
	require.Len(t, c.Skills, 1)
	assert.True(t, c.Skills[0].Ready())
	assert.Equal(t, "Easy!", c.Quote(ruleset.QuoteWin))
}

func TestBuild_ArchetypeMismatch(t *testing.T) {
	_, err := character.Build(&ruleset.Recruit{ID: "x", ArchetypeID: "fighter"}, &ruleset.Archetype{ID: "support"})
	assert.Error(t, err)
	_, err = character.Build(nil, nil)
	assert.Error(t, err)
}
