package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded item definitions indexed by ID.
type Registry struct {
	items map[string]*ItemDef
	built map[string]Item
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[string]*ItemDef),
		built: make(map[string]Item),
	}
}

// LoadRegistry loads every item in dir into a new Registry.
func LoadRegistry(dir string) (*Registry, error) {
	defs, err := LoadItems(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil and valid.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	r.built[d.ID] = d.Build()
	return nil
}

// Item returns the ItemDef for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// Instance returns the shared Item built from the definition with the given id.
//
// Items are stateless, so every stack of the same id shares one value.
func (r *Registry) Instance(id string) (Item, bool) {
	it, ok := r.built[id]
	return it, ok
}

// AllItems returns all registered ItemDefs ordered by Order, then ID.
//
// Postcondition: len(result) == number of registered items.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}
