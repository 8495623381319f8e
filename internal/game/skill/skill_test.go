package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/noahsark/internal/game/skill"
)

type stubCaster struct{ atk, kn, lk int }

func (s stubCaster) Attack() int    { return s.atk }
func (s stubCaster) Knowledge() int { return s.kn }
func (s stubCaster) Luck() int      { return s.lk }

type stubMember struct{ hp, max int }

func (m *stubMember) IsAlive() bool { return m.hp > 0 }
func (m *stubMember) Heal(n int) int {
	before := m.hp
	m.hp += n
	if m.hp > m.max {
		m.hp = m.max
	}
	return m.hp - before
}

func TestAttackEffect_ScalesFromSelectedStat(t *testing.T) {
	c := stubCaster{atk: 10, kn: 20, lk: 30}
	tests := []struct {
		stat skill.Stat
		want int
	}{
		{skill.StatPower, 30},     // 10*2 + 10
		{skill.StatKnowledge, 50}, // 20*2 + 10
		{skill.StatLuck, 70},      // 30*2 + 10
	}
	for _, tc := range tests {
		e := skill.AttackEffect{Stat: tc.stat, Multiplier: 2.0, Flat: 10}
		assert.Equal(t, tc.want, e.Apply(c, nil), "stat %s", tc.stat)
	}
}

func TestAttackEffect_FloorsFractionalDamage(t *testing.T) {
	e := skill.AttackEffect{Stat: skill.StatKnowledge, Multiplier: 1.5, Flat: 20}
	// 13 * 1.5 = 19.5 -> 19, + 20
	assert.Equal(t, 39, e.Apply(stubCaster{kn: 13}, nil))
}

func TestHealEffect_HealsOnlyLivingMembers(t *testing.T) {
	alive := &stubMember{hp: 10, max: 200}
	dead := &stubMember{hp: 0, max: 200}
	full := &stubMember{hp: 95, max: 100}
	e := skill.HealEffect{Flat: 50, KnowledgeMultiplier: 3.0}

	dmg := e.Apply(stubCaster{kn: 15}, []skill.Member{alive, dead, full})

	assert.Equal(t, 0, dmg)
	assert.Equal(t, 105, alive.hp) // 10 + 50 + 45
	assert.Equal(t, 0, dead.hp)
	assert.Equal(t, 100, full.hp)
}

func TestSkill_UseStartsCooldown(t *testing.T) {
	s := skill.New("Stun Watch", "", 4, skill.AttackEffect{Stat: skill.StatKnowledge, Multiplier: 1.5, Flat: 20})
	require.True(t, s.Ready())

	s.Use(stubCaster{kn: 12}, nil)

	assert.False(t, s.Ready())
	assert.Equal(t, 4, s.Cooldown())
}

func TestSkill_ZeroCooldownAlwaysReady(t *testing.T) {
	s := skill.New("Jab", "", 0, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
	s.Use(stubCaster{atk: 5}, nil)
	assert.True(t, s.Ready())
}

func TestSkill_NegativeCooldownClampedToZero(t *testing.T) {
	s := skill.New("Odd", "", -3, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
	assert.Equal(t, 0, s.MaxCooldown)
}

func TestSkill_Property_CooldownDecreasesByOneNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxCD := rapid.IntRange(0, 10).Draw(rt, "max_cooldown")
		ticks := rapid.IntRange(0, 20).Draw(rt, "ticks")
		s := skill.New("S", "", maxCD, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
		s.Use(stubCaster{atk: 1}, nil)
		assert.Equal(rt, maxCD, s.Cooldown())
		for i := 1; i <= ticks; i++ {
			prev := s.Cooldown()
			s.Tick()
			if prev > 0 {
				assert.Equal(rt, prev-1, s.Cooldown())
			} else {
				assert.Equal(rt, 0, s.Cooldown())
			}
		}
		assert.GreaterOrEqual(rt, s.Cooldown(), 0)
	})
}

func TestTracker_TickAndReset(t *testing.T) {
	a := skill.New("A", "", 2, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
	b := skill.New("B", "", 1, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 1})
	c := skill.New("C", "", 3, skill.HealEffect{Flat: 1})
	tr := skill.NewTracker()
	tr.Track("conan", []*skill.Skill{a, b})
	tr.Track("ai", []*skill.Skill{c})

	a.Use(stubCaster{}, nil)
	b.Use(stubCaster{}, nil)
	c.Use(stubCaster{}, nil)
	assert.False(t, a.Ready())
	assert.False(t, b.Ready())

	tr.Tick()
	assert.Equal(t, 1, a.Cooldown())
	assert.True(t, b.Ready())
	assert.Equal(t, 2, c.Cooldown())

	tr.Reset()
	assert.True(t, a.Ready())
	assert.True(t, b.Ready())
	assert.True(t, c.Ready())
}

func TestDef_Build(t *testing.T) {
	s, err := skill.Def{Name: "First Aid", Kind: skill.KindHeal, Flat: 50, KnowledgeMultiplier: 3, Cooldown: 3}.Build()
	require.NoError(t, err)
	assert.Equal(t, skill.KindHeal, s.Effect.Kind())
	assert.Equal(t, 3, s.MaxCooldown)

	s, err = skill.Def{Name: "Kick", Kind: skill.KindAttack, Stat: skill.StatPower, Multiplier: 2, Flat: 10, Cooldown: 2}.Build()
	require.NoError(t, err)
	assert.Equal(t, skill.AttackEffect{Stat: skill.StatPower, Multiplier: 2, Flat: 10}, s.Effect)
}

func TestDef_Validate_Errors(t *testing.T) {
	bad := []skill.Def{
		{Kind: skill.KindAttack, Stat: skill.StatPower},
		{Name: "x", Kind: "buff"},
		{Name: "x", Kind: skill.KindAttack, Stat: "charm"},
		{Name: "x", Kind: skill.KindAttack, Stat: skill.StatLuck, Cooldown: -1},
		{Name: "x", Kind: skill.KindHeal, Flat: -5},
	}
	for _, d := range bad {
		assert.Error(t, d.Validate(), "%+v", d)
	}
}
