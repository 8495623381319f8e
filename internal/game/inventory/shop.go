package inventory

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned by Shop.Buy when the wallet cannot cover the price.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Wallet is the money holder a purchase is charged to.
type Wallet interface {
	// Spend deducts amount and reports whether the balance covered it.
	Spend(amount int) bool
}

// Shop sells every registered item at its listed price.
type Shop struct {
	reg     *Registry
	catalog []*ItemDef
}

// NewShop returns a Shop listing every item in reg in catalogue order.
func NewShop(reg *Registry) *Shop {
	return &Shop{reg: reg, catalog: reg.AllItems()}
}

// Catalog returns the items on sale in listing order.
func (s *Shop) Catalog() []*ItemDef { return s.catalog }

// Buy charges the price of catalogue entry idx to w and adds one unit to inv.
//
// Postcondition: on error neither w nor inv is modified.
func (s *Shop) Buy(idx int, w Wallet, inv *Inventory) (*ItemDef, error) {
	if idx < 0 || idx >= len(s.catalog) {
		return nil, fmt.Errorf("%w: shop entry %d out of range [0,%d)", ErrInvalidSelection, idx, len(s.catalog))
	}
	d := s.catalog[idx]
	if !w.Spend(d.Price) {
		return nil, fmt.Errorf("%w: %q costs %d", ErrInsufficientFunds, d.Name, d.Price)
	}
	if err := inv.Add(d.ID, 1, s.reg); err != nil {
		return nil, err
	}
	return d, nil
}
