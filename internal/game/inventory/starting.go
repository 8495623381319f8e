package inventory

import (
	"fmt"
	"sort"
)

// NewStarting returns an inventory stocked with the given item quantities.
//
// Precondition: every key of grants is registered in reg.
// Postcondition: slots follow the catalogue order of reg.
func NewStarting(reg *Registry, grants map[string]int) (*Inventory, error) {
	ids := make([]string, 0, len(grants))
	for id := range grants {
		ids = append(ids, id)
	}
	order := map[string]int{}
	for i, d := range reg.AllItems() {
		order[d.ID] = i
	}
	sort.Slice(ids, func(i, j int) bool { return order[ids[i]] < order[ids[j]] })

	inv := New()
	for _, id := range ids {
		if err := inv.Add(id, grants[id], reg); err != nil {
			return nil, fmt.Errorf("starting inventory: %w", err)
		}
	}
	return inv, nil
}
