package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/noahsark/internal/game/combat"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/explore"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/session"
	"github.com/cory-johannsen/noahsark/internal/game/world"
	"github.com/cory-johannsen/noahsark/internal/scripting"
	"github.com/cory-johannsen/noahsark/internal/testutil"
)

const root = "../../../content/"

// switchRand lets a test swap the roll source between game phases.
type switchRand struct{ r dice.Rand }

func (s *switchRand) UniformInt(min, max int) int { return s.r.UniformInt(min, max) }

type attacker struct{}

func (attacker) ChooseAction(context.Context, combat.Turn) (combat.ActionType, error) {
	return combat.ActionAttack, nil
}
func (attacker) ChooseSkill(context.Context, combat.Turn) (int, bool, error) { return 0, false, nil }
func (attacker) ChooseItem(context.Context, combat.Turn, *inventory.Inventory) (int, bool, error) {
	return 0, false, nil
}
func (attacker) ChooseTarget(context.Context, combat.Turn) (int, bool, error) { return 0, false, nil }

func loadContent(t *testing.T) session.Content {
	t.Helper()
	rules, err := ruleset.Load(root+"archetypes", root+"recruits")
	require.NoError(t, err)
	items, err := inventory.LoadRegistry(root + "items")
	require.NoError(t, err)
	locations, err := world.LoadFromDir(root + "locations")
	require.NoError(t, err)
	table, err := npc.LoadTable(root + "encounters/noahs_ark.yaml")
	require.NoError(t, err)
	story, err := progress.LoadStory(root + "story/chapters.yaml")
	require.NoError(t, err)
	return session.Content{Rules: rules, Items: items, World: locations, Monsters: table, Story: story}
}

func testConfig() session.Config {
	battle := combat.DefaultConfig()
	battle.MaxRounds = 100
	return session.Config{
		StartingMoney: 200,
		StartingItems: map[string]int{"eel_rice": 3},
		Companions:    3,
		Battle:        battle,
		Explore:       explore.DefaultConfig(),
	}
}

// newSession deals Conan, Agasa, Akai and Amuro, then rolls 100 for everything.
func newSession(t *testing.T, events *scripting.Manager, rng *switchRand) *session.Session {
	t.Helper()
	rng.r = testutil.NewScriptedRand(0, 1, 2)
	s, err := session.New(testConfig(), loadContent(t), events, rng, zaptest.NewLogger(t))
	require.NoError(t, err)
	rng.r = testutil.FixedRand(100)
	return s
}

func partyNames(s *session.Session) []string {
	var names []string
	for _, c := range s.Party() {
		names = append(names, c.Name)
	}
	return names
}

func TestNew_StartsFreshGame(t *testing.T) {
	s := newSession(t, nil, &switchRand{})

	assert.Equal(t, []string{"Conan Edogawa", "Professor Agasa", "Shuichi Akai", "Tooru Amuro"}, partyNames(s))
	assert.True(t, s.Party()[0].Controlled)
	assert.Empty(t, s.Roster.Reserve())
	assert.Equal(t, 200, s.State.Money)
	assert.Equal(t, 0, s.State.Chapter)
	assert.Equal(t, 3, s.Backpack.Quantity("eel_rice"))
	require.NotNil(t, s.Location())
	assert.Equal(t, 1, s.Location().ID)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	content := loadContent(t)
	rng := testutil.FixedRand(1)

	cfg := testConfig()
	cfg.Battle.NPCSkillChance = 101
	_, err := session.New(cfg, content, nil, rng, zaptest.NewLogger(t))
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Explore.ClueDice = "many"
	_, err = session.New(cfg, content, nil, rng, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, err = session.New(testConfig(), session.Content{}, nil, rng, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestCheckStory_OpensChapterOne(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	assert.Empty(t, s.CheckStory())

	s.State.AddClues(1)
	chapters := s.CheckStory()
	require.Len(t, chapters, 1)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 1, s.State.Chapter)
	assert.Equal(t, 0, s.State.Clues)
}

func TestTravel_RespectsChapterGate(t *testing.T) {
	s := newSession(t, nil, &switchRand{})

	_, err := s.Travel(2)
	assert.ErrorIs(t, err, world.ErrLocked)
	assert.Equal(t, 1, s.State.LocationID)

	l, err := s.Travel(0)
	require.NoError(t, err)
	assert.Equal(t, 0, l.ID)
	assert.Equal(t, 0, s.Location().ID)
	assert.Len(t, s.Destinations(), 8)
}

func TestBuy(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	catalog := s.Catalog()
	require.Len(t, catalog, 4)
	require.Equal(t, "melon_bread", catalog[2].ID)

	d, err := s.Buy(2)
	require.NoError(t, err)
	assert.Equal(t, "melon_bread", d.ID)
	assert.Equal(t, 100, s.State.Money)
	assert.Equal(t, 1, s.Backpack.Quantity("melon_bread"))

	_, err = s.Buy(0)
	assert.ErrorIs(t, err, inventory.ErrInsufficientFunds)
	assert.Equal(t, 100, s.State.Money)
}

func TestUseItem(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	agasa := s.Party()[1]
	agasa.ApplyDamage(agasa.MaxHP() - 1)

	ok, err := s.UseItem(0, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, agasa.MaxHP(), agasa.HP())
	assert.Equal(t, 2, s.Backpack.Quantity("eel_rice"))

	agasa.ApplyDamage(agasa.MaxHP())
	ok, err = s.UseItem(0, 1)
	require.NoError(t, err)
	assert.False(t, ok, "food does not raise a downed member")
	assert.Equal(t, 0, agasa.HP())
	assert.Equal(t, 2, s.Backpack.Quantity("eel_rice"))

	_, err = s.UseItem(0, 9)
	assert.ErrorIs(t, err, inventory.ErrInvalidSelection)
	assert.Equal(t, 2, s.Backpack.Quantity("eel_rice"))
}

func TestSwap_EmptyReserve(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	assert.ErrorIs(t, s.Swap(1, 0), explore.ErrEmptyReserve)
}

func TestEncounter_NormalAtStart(t *testing.T) {
	rng := &switchRand{}
	s := newSession(t, nil, rng)
	rng.r = testutil.FixedRand(1)

	m, err := s.Encounter()
	require.NoError(t, err)
	assert.Equal(t, npc.Normal, m.Type)
}

func TestFight_Victory(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	m := npc.NewMonster("Thug", npc.Normal, 1, 1, 50)

	res, err := s.Fight(context.Background(), m, combat.WithDecider(attacker{}))
	require.NoError(t, err)
	assert.True(t, res.Won())
	assert.False(t, res.GameOver)
	assert.Empty(t, res.Chapters)
	assert.Equal(t, 250, s.State.Money)
	assert.Equal(t, 0, s.State.Chapter)
}

func TestFight_BossVictoryAdvancesStory(t *testing.T) {
	s := newSession(t, nil, &switchRand{})

	kir := npc.NewMonster("Kir", npc.Boss, 1, 1, 0)
	kir.BossID = progress.BossKir
	res, err := s.Fight(context.Background(), kir, combat.WithDecider(attacker{}))
	require.NoError(t, err)
	require.Len(t, res.Chapters, 1)
	assert.Equal(t, 4, res.Chapters[0].Number)
	assert.False(t, res.Relocated)
	assert.Equal(t, 4, s.State.Chapter)
	assert.True(t, s.State.Defeated(progress.BossKir))

	gin := npc.NewMonster("Gin", npc.Boss, 1, 1, 0)
	gin.BossID = progress.BossGin
	res, err = s.Fight(context.Background(), gin, combat.WithDecider(attacker{}))
	require.NoError(t, err)
	require.Len(t, res.Chapters, 2)
	assert.Equal(t, 7, res.Chapters[0].Number)
	assert.Equal(t, 8, res.Chapters[1].Number)
	assert.True(t, res.Relocated)
	assert.Equal(t, progress.FinalLocation, s.Location().ID)
	assert.True(t, s.State.Finished())
}

func TestFight_WipeoutIsGameOverUntilReset(t *testing.T) {
	rng := &switchRand{}
	s := newSession(t, nil, rng)
	m := npc.NewMonster("Sniper", npc.Normal, 100000, 100000, 0)

	res, err := s.Fight(context.Background(), m, combat.WithDecider(attacker{}))
	require.NoError(t, err)
	assert.False(t, res.Won())
	assert.True(t, res.GameOver)
	assert.True(t, s.GameOver())

	_, err = s.Encounter()
	assert.ErrorIs(t, err, session.ErrGameOver)

	rng.r = testutil.NewScriptedRand(3, 4, 5)
	require.NoError(t, s.Reset())
	assert.False(t, s.GameOver())
	assert.Equal(t, 200, s.State.Money)
	assert.Len(t, s.Party(), 4)
}

func TestFight_NoDeciderForLeader(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	_, err := s.Fight(context.Background(), npc.NewMonster("Thug", npc.Normal, 1, 1, 0))
	assert.Error(t, err)
}

func TestRandomEvent_NoManager(t *testing.T) {
	s := newSession(t, nil, &switchRand{})
	_, ok := s.RandomEvent()
	assert.False(t, ok)
}

func TestRandomEvent_CallbacksReachGameState(t *testing.T) {
	rng := &switchRand{}
	events := scripting.NewManager(scripting.DefaultConfig(), rng, zaptest.NewLogger(t))
	t.Cleanup(events.Close)
	require.NoError(t, events.Load(root+"scripts/events"))
	s := newSession(t, events, rng)

	rng.r = testutil.NewScriptedRand(10, 1)
	id, ok := s.RandomEvent()
	require.True(t, ok)
	assert.Equal(t, "ran_karate", id)
	assert.Equal(t, 1, s.State.Clues)

	agasa := s.Party()[1]
	agasa.ApplyDamage(40)
	rng.r = testutil.NewScriptedRand(10, 2)
	id, ok = s.RandomEvent()
	require.True(t, ok)
	assert.Equal(t, "agasa_quiz", id)
	assert.Equal(t, agasa.MaxHP(), agasa.HP())

	rng.r = testutil.NewScriptedRand(10, 0)
	id, _ = s.RandomEvent()
	assert.Equal(t, "lunch", id)
	assert.Equal(t, 170, s.State.Money)
}

func TestInvestigate_AddsClues(t *testing.T) {
	rng := &switchRand{}
	s := newSession(t, nil, rng)
	// success draw, 1d2 rolls 2, no encounter
	rng.r = testutil.NewScriptedRand(1, 2, 100)

	rep, err := s.Investigate()
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.Equal(t, 2, rep.Clues)
	assert.Equal(t, 2, s.State.Clues)
}

func TestSetNarrator_ReceivesEventLines(t *testing.T) {
	rng := &switchRand{}
	events := scripting.NewManager(scripting.DefaultConfig(), rng, zaptest.NewLogger(t))
	t.Cleanup(events.Close)
	require.NoError(t, events.Load(root+"scripts/events"))
	s := newSession(t, events, rng)

	var speakers []string
	s.SetNarrator(func(speaker, _ string) { speakers = append(speakers, speaker) })
	rng.r = testutil.NewScriptedRand(10, 1)
	_, ok := s.RandomEvent()
	require.True(t, ok)
	assert.Equal(t, []string{"Ran Mouri", "", ""}, speakers)
}
