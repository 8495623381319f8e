package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLocationFile is the top-level YAML structure for location files.
type yamlLocationFile struct {
	Start     int            `yaml:"start"`
	Locations []yamlLocation `yaml:"locations"`
}

// yamlLocation is the YAML representation of a location.
type yamlLocation struct {
	ID                 int     `yaml:"id"`
	Name               string  `yaml:"name"`
	Description        string  `yaml:"description"`
	EnemyStatMod       float64 `yaml:"enemy_stat_mod"`
	MoneyDropMod       float64 `yaml:"money_drop_mod"`
	InvestigationBonus int     `yaml:"investigation_bonus"`
	RequiredChapter    int     `yaml:"required_chapter"`
}

// Map is the parsed contents of one location file.
type Map struct {
	Start     int
	Locations []*Location
}

// LoadMapFromFile reads and validates a single location YAML file.
//
// Precondition: path must point to a valid YAML location file.
// Postcondition: Returns a validated Map or a non-nil error.
func LoadMapFromFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading location file %s: %w", path, err)
	}
	return LoadMapFromBytes(data)
}

// LoadMapFromBytes parses and validates locations from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the location schema.
// Postcondition: Returns a validated Map or a non-nil error.
func LoadMapFromBytes(data []byte) (*Map, error) {
	var file yamlLocationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing location YAML: %w", err)
	}
	m := &Map{Start: file.Start}
	for _, yl := range file.Locations {
		loc := &Location{
			ID:                 yl.ID,
			Name:               yl.Name,
			Description:        strings.TrimSpace(yl.Description),
			EnemyStatMod:       yl.EnemyStatMod,
			MoneyDropMod:       yl.MoneyDropMod,
			InvestigationBonus: yl.InvestigationBonus,
			RequiredChapter:    yl.RequiredChapter,
		}
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("validating location: %w", err)
		}
		m.Locations = append(m.Locations, loc)
	}
	return m, nil
}

// LoadFromDir loads every YAML file in dir and builds a Manager. The start
// location is taken from the first file in directory order.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns a Manager or the first error encountered.
func LoadFromDir(dir string) (*Manager, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading location directory %s: %w", dir, err)
	}

	var (
		locs  []*Location
		start = -1
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		m, err := LoadMapFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading locations from %s: %w", name, err)
		}
		if start < 0 {
			start = m.Start
		}
		locs = append(locs, m.Locations...)
	}

	if len(locs) == 0 {
		return nil, fmt.Errorf("no location files found in %s", dir)
	}
	return NewManager(locs, start)
}
