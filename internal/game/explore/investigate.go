package explore

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/character"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/world"
)

// Config holds the investigation odds.
type Config struct {
	// BaseChance is added to the location bonus; success needs a d100 strictly below the sum.
	BaseChance int `mapstructure:"base_chance"`
	// ClueDice is the dice expression rolled for clues on success.
	ClueDice string `mapstructure:"clue_dice"`
	// RecruitChance is the percent chance of meeting a companion.
	RecruitChance int `mapstructure:"recruit_chance"`
	// RecruitAttempts bounds the draws made looking for an unmet companion.
	RecruitAttempts int `mapstructure:"recruit_attempts"`
}

// DefaultConfig returns the stock investigation odds.
func DefaultConfig() Config {
	return Config{BaseChance: 50, ClueDice: "1d2", RecruitChance: 5, RecruitAttempts: 5}
}

// Validate checks the odds and the dice expression.
func (c Config) Validate() error {
	var errs []error
	if c.BaseChance < 0 || c.BaseChance > 100 {
		errs = append(errs, fmt.Errorf("base_chance must be in [0,100], got %d", c.BaseChance))
	}
	if _, err := dice.Parse(c.ClueDice); err != nil {
		errs = append(errs, fmt.Errorf("clue_dice: %w", err))
	}
	if c.RecruitChance < 0 || c.RecruitChance > 100 {
		errs = append(errs, fmt.Errorf("recruit_chance must be in [0,100], got %d", c.RecruitChance))
	}
	if c.RecruitAttempts < 1 {
		errs = append(errs, fmt.Errorf("recruit_attempts must be >= 1, got %d", c.RecruitAttempts))
	}
	return errors.Join(errs...)
}

// Report describes what one investigation found.
type Report struct {
	Success bool
	Clues   int
	// Encounter is true when the recruit roll succeeded, even if nobody new was found.
	Encounter bool
	Met       *character.Character
	// JoinedParty is false when Met went to the reserve.
	JoinedParty bool
}

// Investigator searches the current location for clues and companions.
type Investigator struct {
	cfg       Config
	clueDice  dice.Expression
	recruiter *Recruiter
	rng       dice.Rand
	logger    *zap.Logger
}

// NewInvestigator validates cfg and creates an Investigator.
//
// Precondition: recruiter, rng and logger must be non-nil.
func NewInvestigator(cfg Config, recruiter *Recruiter, rng dice.Rand, logger *zap.Logger) (*Investigator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("explore: invalid config: %w", err)
	}
	return &Investigator{
		cfg:       cfg,
		clueDice:  dice.MustParse(cfg.ClueDice),
		recruiter: recruiter,
		rng:       rng,
		logger:    logger,
	}, nil
}

// Investigate rolls for clues at loc, then for a chance meeting.
//
// Draw order: d100 for success, the clue dice on success, d100 for the
// encounter, then one companion draw per attempt.
//
// Postcondition: st.Clues grows by Report.Clues; Report.Met is on roster.
func (i *Investigator) Investigate(loc *world.Location, st *progress.State, roster *Roster) (Report, error) {
	if loc == nil {
		return Report{}, errors.New("explore: no current location")
	}
	var rep Report
	if i.rng.UniformInt(1, 100) < i.cfg.BaseChance+loc.InvestigationBonus {
		rep.Success = true
		rep.Clues = max(dice.Roll(i.clueDice, i.rng).Total(), 0)
		st.AddClues(rep.Clues)
	}

	if i.rng.UniformInt(1, 100) <= i.cfg.RecruitChance {
		rep.Encounter = true
		c, err := i.recruiter.Unmet(roster, i.cfg.RecruitAttempts)
		if err != nil {
			return rep, fmt.Errorf("explore: recruiting: %w", err)
		}
		if c != nil {
			rep.Met = c
			rep.JoinedParty = roster.Add(c)
		}
	}

	fields := []zap.Field{
		zap.Int("location", loc.ID),
		zap.Bool("success", rep.Success),
		zap.Int("clues", rep.Clues),
		zap.Int("total_clues", st.Clues),
	}
	if rep.Met != nil {
		fields = append(fields, zap.String("met", rep.Met.Name), zap.Bool("joined_party", rep.JoinedParty))
	}
	i.logger.Info("investigated", fields...)
	return rep, nil
}
