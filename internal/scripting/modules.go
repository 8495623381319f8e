package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/dice"
)

// RegisterModules registers all engine.* Lua tables into L.
//
// Precondition: L must be from NewEventVM.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	L.SetField(engine, "log", m.newLogModule(L))
	L.SetField(engine, "dice", m.newDiceModule(L))
	L.SetField(engine, "events", m.newEventsModule(L))

	L.SetField(engine, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "add_clues", L.NewFunction(func(L *lua.LState) int {
		if m.AddClues != nil {
			m.AddClues(L.CheckInt(1))
		}
		return 0
	}))
	L.SetField(engine, "add_money", L.NewFunction(func(L *lua.LState) int {
		if m.AddMoney != nil {
			m.AddMoney(L.CheckInt(1))
		}
		return 0
	}))
	L.SetField(engine, "heal_party", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckInt(1)
		restored := 0
		if m.HealParty != nil {
			restored = m.HealParty(amount)
		}
		L.Push(lua.LNumber(restored))
		return 1
	}))
	L.SetField(engine, "location_id", L.NewFunction(func(L *lua.LState) int {
		if m.LocationID == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(m.LocationID()))
		return 1
	}))
	L.SetField(engine, "say", L.NewFunction(m.luaSay))
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		log := fn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

// newDiceModule exposes engine.dice.roll(expr), returning
// {total = n, dice = sum of dice, modifier = m} or nil for a bad expression.
func (m *Manager) newDiceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		expr, err := dice.Parse(L.CheckString(1))
		if err != nil {
			m.logger.Warn("scripting: bad dice expression", zap.Error(err))
			L.Push(lua.LNil)
			return 1
		}
		res := dice.Roll(expr, m.rng)
		t := L.NewTable()
		L.SetField(t, "total", lua.LNumber(res.Total()))
		L.SetField(t, "dice", lua.LNumber(res.Total()-res.Modifier))
		L.SetField(t, "modifier", lua.LNumber(res.Modifier))
		L.Push(t)
		return 1
	}))
	return mod
}

// newEventsModule exposes engine.events.register{id=, title=, min_location=, run=}.
func (m *Manager) newEventsModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(func(L *lua.LState) int {
		def := L.CheckTable(1)
		id, ok := def.RawGetString("id").(lua.LString)
		if !ok || id == "" {
			L.ArgError(1, "event id must be a non-empty string")
			return 0
		}
		run, ok := def.RawGetString("run").(*lua.LFunction)
		if !ok {
			L.ArgError(1, "event "+string(id)+" needs a run function")
			return 0
		}
		for _, e := range m.pending {
			if e.ID == string(id) {
				L.RaiseError("event %q already registered", string(id))
				return 0
			}
		}
		e := &Event{ID: string(id), Title: lua.LVAsString(def.RawGetString("title")), run: run}
		if n, ok := def.RawGetString("min_location").(lua.LNumber); ok {
			e.MinLocation = int(n)
		}
		m.pending = append(m.pending, e)
		return 0
	}))
	return mod
}

// luaRoll implements engine.roll(min, max), a uniform draw with both bounds inclusive.
func (m *Manager) luaRoll(L *lua.LState) int {
	lo, hi := L.CheckInt(1), L.CheckInt(2)
	if lo > hi {
		L.ArgError(2, "max must be >= min")
		return 0
	}
	L.Push(lua.LNumber(m.rng.UniformInt(lo, hi)))
	return 1
}

// luaSay implements engine.say(text) and engine.say(speaker, text).
func (m *Manager) luaSay(L *lua.LState) int {
	speaker, text := "", L.CheckString(1)
	if L.GetTop() >= 2 {
		speaker, text = text, L.CheckString(2)
	}
	if m.Say != nil {
		m.Say(speaker, text)
	}
	return 0
}
