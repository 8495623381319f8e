package command

import (
	"fmt"
	"sort"
	"strconv"
)

// Registry maps command names, aliases and menu numbers to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
	menu     map[int]*Command    // menu number → command
	order    []*Command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name, alias or menu number.
// Postcondition: Returns a Registry or an error on collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
		menu:     make(map[int]*Command),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.order = append(r.order, cmd)

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}

		if cmd.Menu == Hidden {
			continue
		}
		if cmd.Menu < 0 {
			return nil, fmt.Errorf("command %q has invalid menu number %d", cmd.Name, cmd.Menu)
		}
		if existing, exists := r.menu[cmd.Menu]; exists {
			return nil, fmt.Errorf("duplicate menu number %d: used by %q and %q", cmd.Menu, existing.Name, cmd.Name)
		}
		r.menu[cmd.Menu] = cmd
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name, alias or menu number.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	if n, err := strconv.Atoi(input); err == nil {
		cmd, ok := r.menu[n]
		return cmd, ok
	}
	return nil, false
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, len(r.order))
	copy(result, r.order)
	return result
}

// Menu returns the numbered commands ordered by number, with 0 last.
func (r *Registry) Menu() []*Command {
	result := make([]*Command, 0, len(r.menu))
	for _, cmd := range r.menu {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Menu, result[j].Menu
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	return result
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.order {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
