package scripting_test

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/noahsark/internal/scripting"
	"github.com/cory-johannsen/noahsark/internal/testutil"
)

func newVM(t *testing.T, limit int) *lua.LState {
	t.Helper()
	L := scripting.NewEventVM(limit)
	require.NotNil(t, L)
	t.Cleanup(L.Close)
	return L
}

func TestNewEventVM_NoHostLibraries(t *testing.T) {
	L := newVM(t, 0)
	for _, name := range []string{"os", "io", "debug"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s should not be loaded", name)
	}
}

func TestNewEventVM_BlockedGlobals(t *testing.T) {
	L := newVM(t, 0)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require", "print"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s should be removed", name)
	}
}

func TestNewEventVM_EventLibrariesWork(t *testing.T) {
	L := newVM(t, 0)
	err := L.DoString(`
		local bonus = math.floor(7 / 2)
		assert(bonus == 3, "math.floor failed")
		local line = string.format("clues +%d", bonus)
		assert(line == "clues +3", "string.format failed")
		local names = {"Ran", "Kazuha"}
		table.insert(names, "Sonoko")
		assert(#names == 3, "table.insert failed")
		assert(type(pairs) == "function", "base library missing")
	`)
	assert.NoError(t, err)
}

func TestNewEventVM_RunawayScriptStops(t *testing.T) {
	L := newVM(t, 10)
	assert.Error(t, L.DoString(`while true do end`))
}

func TestNewEventVM_ShortScriptFitsDefaultBudget(t *testing.T) {
	L := newVM(t, 0)
	assert.NoError(t, L.DoString(`local clues = 1 + 1`))
}

func TestProperty_AnyBudgetStopsAnInfiniteLoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(t, "limit")
		L := scripting.NewEventVM(limit)
		defer L.Close()
		if err := L.DoString(`while true do end`); err == nil {
			t.Fatalf("limit=%d: infinite loop finished without error", limit)
		}
	})
}

func TestManager_BudgetIsRearmedForEveryCall(t *testing.T) {
	cfg := scripting.Config{Chance: 100, InstructionLimit: 1000}
	mgr := scripting.NewManager(cfg, testutil.FixedRand(1), zap.NewNop())
	t.Cleanup(mgr.Close)
	dir := writeTempLua(t, "loop.lua", `
		function spin()
			local n = 0
			for i = 1, 20 do n = n + i end
			return n
		end
	`)
	require.NoError(t, mgr.Load(dir))
	for range 50 {
		ret, err := mgr.CallHook("spin")
		require.NoError(t, err)
		assert.Equal(t, lua.LNumber(210), ret)
	}
}
