package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func defaultConfig(t *testing.T) Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)
	assert.Equal(t, 200, cfg.Game.StartingMoney)
	assert.Equal(t, map[string]int{"eel_rice": 3}, cfg.Game.StartingItems)
	assert.Equal(t, 3, cfg.Game.Companions)
	assert.Equal(t, uint64(0), cfg.Game.Seed)

	assert.Equal(t, 5, cfg.Battle.BossClueCost)
	assert.Equal(t, 3, cfg.Battle.EliteClueCost)
	assert.InDelta(t, 0.7, cfg.Battle.BossDiscount, 1e-9)
	assert.InDelta(t, 0.8, cfg.Battle.EliteDiscount, 1e-9)
	assert.Equal(t, 2000, cfg.Battle.Rewards.BossExp)
	assert.Equal(t, 150, cfg.Battle.Rewards.NormalExp)
	assert.Equal(t, 60, cfg.Battle.NPCSkillChance)

	assert.Equal(t, "1d2", cfg.Explore.ClueDice)
	assert.Equal(t, 60, cfg.Events.Chance)
	assert.Equal(t, "content/scripts/events", cfg.Content.Events)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
  output: stderr
game:
  starting_money: 1000
  starting_items:
    eel_rice: 1
    first_aid_kit: 2
  seed: 42
battle:
  boss_clue_cost: 4
  rewards:
    boss_exp: 3000
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, 1000, cfg.Game.StartingMoney)
	assert.Equal(t, map[string]int{"eel_rice": 1, "first_aid_kit": 2}, cfg.Game.StartingItems)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, 4, cfg.Battle.BossClueCost)
	assert.Equal(t, 3000, cfg.Battle.Rewards.BossExp)
	assert.Equal(t, 150, cfg.Battle.Rewards.NormalExp)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644))
	t.Setenv("NOAHSARK_GAME_STARTING_MONEY", "999")
	t.Setenv("NOAHSARK_BATTLE_NPC_SKILL_CHANCE", "10")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 999, cfg.Game.StartingMoney)
	assert.Equal(t, 10, cfg.Battle.NPCSkillChance)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := defaultConfig(t)
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := defaultConfig(t)
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateContentEmpty(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Content.Items = ""
	cfg.Content.Story = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.items must not be empty; content.story must not be empty")
}

func TestValidateGame(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Game.StartingMoney = -1
	cfg.Game.StartingItems = map[string]int{"eel_rice": 0}
	cfg.Game.Companions = 4
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting_money")
	assert.Contains(t, err.Error(), "starting_items[eel_rice]")
	assert.Contains(t, err.Error(), "companions")
}

func TestValidateNestedSections(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Battle.NPCSkillChance = 200
	cfg.Explore.ClueDice = "banana"
	cfg.Events.Chance = -5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "battle: ")
	assert.Contains(t, err.Error(), "explore: ")
	assert.Contains(t, err.Error(), "events: ")
}

func TestPropertyChanceRange(t *testing.T) {
	base := defaultConfig(t)
	rapid.Check(t, func(rt *rapid.T) {
		chance := rapid.IntRange(-200, 200).Draw(rt, "chance")
		cfg := base
		cfg.Events.Chance = chance
		valid := chance >= 0 && chance <= 100
		if err := cfg.Validate(); (err == nil) != valid {
			rt.Fatalf("chance %d: valid=%v err=%v", chance, valid, err)
		}
	})
}
