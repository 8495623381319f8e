package npc

import "fmt"

// Rewards is the experience each living party member earns per encounter type.
type Rewards struct {
	BossExp   int `mapstructure:"boss_exp"`
	NormalExp int `mapstructure:"normal_exp"`
}

// DefaultRewards are 2000 exp for a boss and 150 for anything else.
var DefaultRewards = Rewards{BossExp: 2000, NormalExp: 150}

// Validate checks that the rewards are non-negative.
//
// Postcondition: Returns nil iff both amounts are >= 0.
func (r Rewards) Validate() error {
	if r.BossExp < 0 || r.NormalExp < 0 {
		return fmt.Errorf("rewards: exp must be >= 0, got boss=%d normal=%d", r.BossExp, r.NormalExp)
	}
	return nil
}

// ExpFor returns the experience granted for defeating m.
func (r Rewards) ExpFor(m *Monster) int {
	if m.Type == Boss {
		return r.BossExp
	}
	return r.NormalExp
}
