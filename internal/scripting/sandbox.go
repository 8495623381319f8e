// Package scripting runs the Lua random-event scripts. Events see only the
// engine module the Manager registers; the package never imports game code.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one event script call when
// the config leaves it at zero.
const DefaultInstructionLimit = 100_000

// eventLibs are the only standard libraries an event script may use.
var eventLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are base-library functions removed from every event VM.
// print is blocked: stdout belongs to the console.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require", "print"}

// opcodeBudget is a context that GopherLua polls once per opcode. It cancels
// itself when the budget runs out, which aborts the running script.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// armBudget gives L limit opcodes for its next execution; limit <= 0 means
// DefaultInstructionLimit. The returned cancel releases the budget.
func armBudget(L *lua.LState, limit int) context.CancelFunc {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return cancel
}

// NewEventVM creates the Lua state event scripts are loaded into: base,
// table, string and math only, minus blockedGlobals, with a first budget of
// instLimit opcodes.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the returned state and must Close it.
func NewEventVM(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range eventLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	armBudget(L, instLimit) //nolint:govet // the budget cancels itself when spent
	return L
}
