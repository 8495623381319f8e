// Package inventory implements consumable items, the party's item stock and the shop.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind constants for ItemDef.Kind.
const (
	KindRestore = "restore"
	KindRevive  = "revive"
)

// validKinds is the set of valid ItemDef kinds.
var validKinds = map[string]bool{
	KindRestore: true,
	KindRevive:  true,
}

// Target is the party member an item is applied to.
type Target interface {
	HP() int
	MaxHP() int
	SetHP(v int)
}

// Item is a consumable with an effect on one party member.
type Item interface {
	Name() string
	Price() int
	Description() string
	// Apply uses the item on target and reports whether it had an effect.
	//
	// Postcondition: target is unchanged when false is returned.
	Apply(target Target) bool
}

type base struct {
	name, desc string
	price      int
}

func (b base) Name() string        { return b.name }
func (b base) Price() int          { return b.price }
func (b base) Description() string { return b.desc }

// RestoreItem heals a living target by a fixed amount.
type RestoreItem struct {
	base
	Amount int
}

// NewRestoreItem returns a RestoreItem.
func NewRestoreItem(name string, price int, description string, amount int) *RestoreItem {
	return &RestoreItem{base: base{name: name, desc: description, price: price}, Amount: amount}
}

// Apply fails on a downed target; otherwise heals Amount clamped to MaxHP.
func (r *RestoreItem) Apply(target Target) bool {
	if target.HP() <= 0 {
		return false
	}
	target.SetHP(target.HP() + r.Amount)
	return true
}

// ReviveItem brings a downed target back at half HP.
type ReviveItem struct {
	base
}

// NewReviveItem returns a ReviveItem.
func NewReviveItem(name string, price int, description string) *ReviveItem {
	return &ReviveItem{base: base{name: name, desc: description, price: price}}
}

// Apply fails on a living target; otherwise sets HP to MaxHP/2.
//
// Postcondition: Returns true iff the target is standing afterwards.
func (r *ReviveItem) Apply(target Target) bool {
	if target.HP() > 0 {
		return false
	}
	target.SetHP(target.MaxHP() / 2)
	return target.HP() > 0
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	Price       int    `yaml:"price"`
	// Amount is the HP restored by a restore item.
	Amount int `yaml:"amount"`
	// Order positions the item in the shop listing.
	Order int `yaml:"order"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of restore, revive; got %q", d.Kind))
	}
	if d.Price < 0 {
		errs = append(errs, errors.New("Price must be >= 0"))
	}
	if d.Kind == KindRestore && d.Amount < 1 {
		errs = append(errs, errors.New("Amount must be >= 1 when Kind is restore"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Build returns the Item described by d.
//
// Precondition: d.Validate() returned nil.
func (d *ItemDef) Build() Item {
	if d.Kind == KindRevive {
		return NewReviveItem(d.Name, d.Price, d.Description)
	}
	return NewRestoreItem(d.Name, d.Price, d.Description, d.Amount)
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// ItemDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, &d)
	}
	return items, nil
}
