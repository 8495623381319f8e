// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/explore"
	"github.com/cory-johannsen/noahsark/internal/scripting"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout", "none" or a file path. The game screen owns stdout,
	// so a file keeps logs out of play.
	Output string `mapstructure:"output"`
}

// ContentConfig locates the YAML and Lua content.
type ContentConfig struct {
	Archetypes string `mapstructure:"archetypes"`
	Recruits   string `mapstructure:"recruits"`
	Items      string `mapstructure:"items"`
	Locations  string `mapstructure:"locations"`
	Encounters string `mapstructure:"encounters"`
	Story      string `mapstructure:"story"`
	Events     string `mapstructure:"events"`
}

// GameConfig holds new-game settings.
type GameConfig struct {
	StartingMoney int `mapstructure:"starting_money"`
	// StartingItems maps item ids to the quantity granted at the start.
	StartingItems map[string]int `mapstructure:"starting_items"`
	// Companions is the number of random teammates joining the leader.
	Companions int `mapstructure:"companions"`
	// Seed makes every roll reproducible; 0 draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig    `mapstructure:"logging"`
	Content ContentConfig    `mapstructure:"content"`
	Game    GameConfig       `mapstructure:"game"`
	Battle  combat.Config    `mapstructure:"battle"`
	Explore explore.Config   `mapstructure:"explore"`
	Events  scripting.Config `mapstructure:"events"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Battle.Validate(); err != nil {
		errs = append(errs, "battle: "+err.Error())
	}
	if err := c.Explore.Validate(); err != nil {
		errs = append(errs, "explore: "+err.Error())
	}
	if err := c.Events.Validate(); err != nil {
		errs = append(errs, "events: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	for key, val := range map[string]string{
		"archetypes": c.Archetypes,
		"recruits":   c.Recruits,
		"items":      c.Items,
		"locations":  c.Locations,
		"encounters": c.Encounters,
		"story":      c.Story,
		"events":     c.Events,
	} {
		if val == "" {
			errs = append(errs, "content."+key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.StartingMoney < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_money must be >= 0, got %d", g.StartingMoney))
	}
	for id, qty := range g.StartingItems {
		if qty < 1 {
			errs = append(errs, fmt.Sprintf("game.starting_items[%s] must be >= 1, got %d", id, qty))
		}
	}
	if g.Companions < 0 || g.Companions >= character.MaxPartySize {
		errs = append(errs, fmt.Sprintf("game.companions must be 0-%d, got %d", character.MaxPartySize-1, g.Companions))
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with NOAHSARK_ prefix
	v.SetEnvPrefix("NOAHSARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers every default so that env overrides apply to all keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "noahsark.log")

	v.SetDefault("content.archetypes", "content/archetypes")
	v.SetDefault("content.recruits", "content/recruits")
	v.SetDefault("content.items", "content/items")
	v.SetDefault("content.locations", "content/locations")
	v.SetDefault("content.encounters", "content/encounters/noahs_ark.yaml")
	v.SetDefault("content.story", "content/story/chapters.yaml")
	v.SetDefault("content.events", "content/scripts/events")

	v.SetDefault("game.starting_money", 200)
	v.SetDefault("game.starting_items", map[string]int{"eel_rice": 3})
	v.SetDefault("game.companions", 3)
	v.SetDefault("game.seed", 0)

	battle := combat.DefaultConfig()
	v.SetDefault("battle.boss_clue_cost", battle.BossClueCost)
	v.SetDefault("battle.elite_clue_cost", battle.EliteClueCost)
	v.SetDefault("battle.boss_discount", battle.BossDiscount)
	v.SetDefault("battle.elite_discount", battle.EliteDiscount)
	v.SetDefault("battle.rewards.boss_exp", battle.Rewards.BossExp)
	v.SetDefault("battle.rewards.normal_exp", battle.Rewards.NormalExp)
	v.SetDefault("battle.npc_skill_chance", battle.NPCSkillChance)
	v.SetDefault("battle.jitter_low", battle.JitterLow)
	v.SetDefault("battle.jitter_high", battle.JitterHigh)
	v.SetDefault("battle.max_rounds", 500)

	ex := explore.DefaultConfig()
	v.SetDefault("explore.base_chance", ex.BaseChance)
	v.SetDefault("explore.clue_dice", ex.ClueDice)
	v.SetDefault("explore.recruit_chance", ex.RecruitChance)
	v.SetDefault("explore.recruit_attempts", ex.RecruitAttempts)

	ev := scripting.DefaultConfig()
	v.SetDefault("events.chance", ev.Chance)
	v.SetDefault("events.instruction_limit", ev.InstructionLimit)
}
