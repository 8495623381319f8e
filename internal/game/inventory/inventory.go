package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSelection is returned for an out-of-range slot index.
	ErrInvalidSelection = errors.New("invalid item selection")
	// ErrEmptyInventory is returned when an item is requested from an empty inventory.
	ErrEmptyInventory = errors.New("inventory is empty")
)

// Slot is one stack of identical items.
type Slot struct {
	InstanceID string
	ItemDefID  string
	Item       Item
	Quantity   int
}

// Inventory is the party's shared item stock, ordered by first acquisition.
//
// Invariant: every slot has Quantity >= 1.
type Inventory struct {
	slots []Slot
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{}
}

// Add places quantity units of the item with the given id, stacking onto an
// existing slot of the same id.
//
// Precondition: quantity > 0, itemDefID exists in reg.
// Postcondition: on error the inventory is unchanged.
func (inv *Inventory) Add(itemDefID string, quantity int, reg *Registry) error {
	it, ok := reg.Instance(itemDefID)
	if !ok {
		return fmt.Errorf("inventory: unknown item %q", itemDefID)
	}
	if quantity <= 0 {
		return fmt.Errorf("inventory: quantity must be > 0")
	}
	for i := range inv.slots {
		if inv.slots[i].ItemDefID == itemDefID {
			inv.slots[i].Quantity += quantity
			return nil
		}
	}
	inv.slots = append(inv.slots, Slot{
		InstanceID: uuid.New().String(),
		ItemDefID:  itemDefID,
		Item:       it,
		Quantity:   quantity,
	})
	return nil
}

// Slots returns a copy of the current slots.
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// Len returns the number of slots.
func (inv *Inventory) Len() int { return len(inv.slots) }

// IsEmpty reports whether the inventory holds no items.
func (inv *Inventory) IsEmpty() bool { return len(inv.slots) == 0 }

// Quantity returns the stock held for itemDefID.
func (inv *Inventory) Quantity(itemDefID string) int {
	for _, s := range inv.slots {
		if s.ItemDefID == itemDefID {
			return s.Quantity
		}
	}
	return 0
}

// Use applies the item in slot to target.
//
// Precondition: 0 <= slot < Len().
// Postcondition: stock is decremented only when the item applied; a slot
// reaching zero is removed. Returns ErrEmptyInventory or a wrapped
// ErrInvalidSelection without mutation on bad input.
func (inv *Inventory) Use(slot int, target Target) (bool, error) {
	if len(inv.slots) == 0 {
		return false, ErrEmptyInventory
	}
	if slot < 0 || slot >= len(inv.slots) {
		return false, fmt.Errorf("%w: slot %d out of range [0,%d)", ErrInvalidSelection, slot, len(inv.slots))
	}
	if !inv.slots[slot].Item.Apply(target) {
		return false, nil
	}
	inv.slots[slot].Quantity--
	if inv.slots[slot].Quantity <= 0 {
		inv.slots = append(inv.slots[:slot], inv.slots[slot+1:]...)
	}
	return true, nil
}
