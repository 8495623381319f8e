package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/game/dice"
)

// ErrUnknownEvent is returned by Run for an id that was never registered.
var ErrUnknownEvent = errors.New("scripting: unknown event")

// Config controls random event dispatch.
type Config struct {
	// Chance is the percent chance that Trigger fires an event.
	Chance int `mapstructure:"chance"`
	// InstructionLimit bounds the opcodes of one script execution; 0 uses DefaultInstructionLimit.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// DefaultConfig returns a 60% event chance with the default instruction limit.
func DefaultConfig() Config {
	return Config{Chance: 60, InstructionLimit: DefaultInstructionLimit}
}

// Validate checks that the chance is a percentage and the limit is non-negative.
func (c Config) Validate() error {
	var errs []error
	if c.Chance < 0 || c.Chance > 100 {
		errs = append(errs, fmt.Errorf("chance must be in [0,100], got %d", c.Chance))
	}
	if c.InstructionLimit < 0 {
		errs = append(errs, fmt.Errorf("instruction_limit must be >= 0, got %d", c.InstructionLimit))
	}
	return errors.Join(errs...)
}

// Event is a random event registered by a script through engine.events.register.
type Event struct {
	ID    string
	Title string
	// MinLocation is the lowest location id the event can fire at.
	MinLocation int
	run         *lua.LFunction
}

// Manager owns the sandboxed event VM and dispatches random events.
//
// Manager serializes every call into the VM; it is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	L       *lua.LState
	events  []*Event
	pending []*Event
	cfg     Config
	rng     dice.Rand
	logger  *zap.Logger

	// Injected after construction. nil = no-op in engine.* functions.
	AddClues   func(delta int)
	AddMoney   func(delta int)
	HealParty  func(amount int) int
	LocationID func() int
	Say        func(speaker, text string)
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: rng and logger must be non-nil.
// Postcondition: Returns a non-nil Manager; panics on nil collaborators.
func NewManager(cfg Config, rng dice.Rand, logger *zap.Logger) *Manager {
	if rng == nil {
		panic("scripting.NewManager: rng must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{cfg: cfg, rng: rng, logger: logger}
}

// Load creates a fresh sandboxed VM, registers the engine.* API, then executes
// every *.lua file in scriptDir in lexicographic order. A previous VM and its
// events are replaced only when every file loads.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Events() lists the registrations in load order.
func (m *Manager) Load(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()

	L := NewEventVM(m.cfg.InstructionLimit)
	m.RegisterModules(L)
	m.pending = nil
	for _, path := range luaFiles {
		cancel := armBudget(L, m.cfg.InstructionLimit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			m.pending = nil
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.events = m.pending
	m.pending = nil
	m.logger.Info("event scripts loaded", zap.String("dir", scriptDir), zap.Int("events", len(m.events)))
	return nil
}

// Events returns the registered events in load order.
func (m *Manager) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	for i, e := range m.events {
		out[i] = *e
	}
	return out
}

// Eligible returns the ids of the events that can fire at location, in load order.
func (m *Manager) Eligible(location int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, e := range m.eligible(location) {
		ids = append(ids, e.ID)
	}
	return ids
}

func (m *Manager) eligible(location int) []*Event {
	var out []*Event
	for _, e := range m.events {
		if location >= e.MinLocation {
			out = append(out, e)
		}
	}
	return out
}

// Trigger rolls the event chance and, on success, runs one eligible event
// chosen uniformly. No event draw is made when nothing is eligible.
// Lua runtime errors are logged at Warn level and never propagated.
//
// Postcondition: Returns the fired event id and true, or "" and false.
func (m *Manager) Trigger(location int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rng.UniformInt(1, 100) > m.cfg.Chance {
		return "", false
	}
	candidates := m.eligible(location)
	if len(candidates) == 0 {
		return "", false
	}
	e := candidates[m.rng.UniformInt(0, len(candidates)-1)]
	m.logger.Debug("random event", zap.String("event", e.ID), zap.Int("location", location))
	if err := m.call(e.run); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("event", e.ID),
			zap.Error(err),
		)
	}
	return e.ID, true
}

// Run executes the event with id regardless of chance or location.
//
// Postcondition: Returns ErrUnknownEvent or the Lua runtime error, if any.
func (m *Manager) Run(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			if err := m.call(e.run); err != nil {
				return fmt.Errorf("scripting: event %q: %w", id, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, id)
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or no scripts are loaded. Lua runtime errors are logged
// at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.L == nil {
		m.logger.Info("scripting: no scripts loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}
	fn, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return lua.LNil, nil
	}

	cancel := armBudget(m.L, m.cfg.InstructionLimit)
	defer cancel()
	if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}

// call runs fn with a fresh instruction budget. Caller holds m.mu.
func (m *Manager) call(fn *lua.LFunction) error {
	cancel := armBudget(m.L, m.cfg.InstructionLimit)
	defer cancel()
	return m.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
}

// Close releases the VM and forgets every event.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
	m.events = nil
}
