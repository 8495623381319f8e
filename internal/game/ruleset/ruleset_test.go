package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/skill"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadArchetypes_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fighter.yaml"), `
id: fighter
name: "Fighter"
growth: {hp: 100, power: 10, knowledge: 3, luck: 5}
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	archetypes, err := ruleset.LoadArchetypes(dir)
	require.NoError(t, err)
	require.Len(t, archetypes, 1)
	assert.Equal(t, "fighter", archetypes[0].ID)
	assert.False(t, archetypes[0].Controlled)
	assert.Equal(t, ruleset.Growth{HP: 100, Power: 10, Knowledge: 3, Luck: 5}, archetypes[0].Growth)
}

func TestLoadArchetypes_RejectsZeroGrowth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
id: bad
name: "Bad"
growth: {hp: 10, power: 0, knowledge: 1, luck: 1}
`)
	_, err := ruleset.LoadArchetypes(dir)
	assert.Error(t, err)
}

func TestLoadArchetypes_MissingDir(t *testing.T) {
	_, err := ruleset.LoadArchetypes("/nonexistent/archetypes")
	assert.Error(t, err)
}

func TestLoadRecruits_ParsesSkills(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "haibara.yaml"), `
id: haibara
name: "Ai Haibara"
archetype: support
skills:
  - {name: "First Aid", kind: heal, flat: 50, knowledge_multiplier: 3.0, cooldown: 3}
  - {name: "Chemistry", kind: attack, stat: knowledge, multiplier: 2.0, cooldown: 2}
quotes: {win: "It's over."}
`)
	recruits, err := ruleset.LoadRecruits(dir)
	require.NoError(t, err)
	require.Len(t, recruits, 1)
	r := recruits[0]
	assert.Equal(t, 1, r.StartLevel())
	require.Len(t, r.Skills, 2)
	assert.Equal(t, skill.KindHeal, r.Skills[0].Kind)
	assert.Equal(t, skill.StatKnowledge, r.Skills[1].Stat)
	assert.Equal(t, "It's over.", r.Quotes[ruleset.QuoteWin])
}

func TestLoadRecruits_RejectsInvalidSkill(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.yaml"), `
id: x
name: "X"
archetype: fighter
skills:
  - {name: "Glare", kind: stare}
`)
	_, err := ruleset.LoadRecruits(dir)
	assert.Error(t, err)
}

func testArchetypes() []*ruleset.Archetype {
	return []*ruleset.Archetype{
		{ID: "gadgeteer", Name: "Detective", Controlled: true, Growth: ruleset.Growth{HP: 60, Power: 5, Knowledge: 12, Luck: 8}},
		{ID: "fighter", Name: "Fighter", Growth: ruleset.Growth{HP: 100, Power: 10, Knowledge: 3, Luck: 5}},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := ruleset.NewRegistry(testArchetypes(), []*ruleset.Recruit{
		{ID: "conan", Name: "Conan", ArchetypeID: "gadgeteer", Leader: true},
		{ID: "ran", Name: "Ran", ArchetypeID: "fighter"},
		{ID: "heiji", Name: "Heiji", ArchetypeID: "fighter"},
	})
	require.NoError(t, err)
	assert.Equal(t, "conan", reg.Leader().ID)
	companions := reg.Companions()
	require.Len(t, companions, 2)
	assert.Equal(t, "ran", companions[0].ID)
	_, ok := reg.Archetype("fighter")
	assert.True(t, ok)
	_, ok = reg.Recruit("nobody")
	assert.False(t, ok)
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := map[string][]*ruleset.Recruit{
		"unknown archetype": {
			{ID: "conan", Name: "Conan", ArchetypeID: "gadgeteer", Leader: true},
			{ID: "x", Name: "X", ArchetypeID: "wizard"},
		},
		"duplicate recruit": {
			{ID: "conan", Name: "Conan", ArchetypeID: "gadgeteer", Leader: true},
			{ID: "conan", Name: "Conan", ArchetypeID: "gadgeteer"},
		},
		"no leader": {
			{ID: "ran", Name: "Ran", ArchetypeID: "fighter"},
		},
	}
	for name, recruits := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ruleset.NewRegistry(testArchetypes(), recruits)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ShippedContent(t *testing.T) {
	reg, err := ruleset.Load("../../../content/archetypes", "../../../content/recruits")
	require.NoError(t, err)
	assert.Equal(t, "conan", reg.Leader().ID)
	assert.Len(t, reg.Companions(), 13)
}
