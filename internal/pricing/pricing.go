// Package pricing resolves a tour's payable total from its tiered price
// table. Resolution is a pure function: the storefront quote preview and the
// booking service call it with identical inputs and must get identical
// output.
package pricing

import "errors"

type Tier string

const (
	TierPerSlot  Tier = "per_slot"
	TierGroup    Tier = "group"
	TierDiscount Tier = "discount"
)

// Table is a tour's price table. PerSlot is mandatory; Group and Discount
// are optional tiers — a nil pointer means the tour does not offer that
// tier, which is not the same as offering it at zero.
type Table struct {
	PerSlot  float64
	Group    *float64
	Discount *float64
}

type Quote struct {
	Tier      Tier
	UnitPrice float64
	PartySize int
	Total     float64
}

var ErrInvalidPartySize = errors.New("pricing: party size must be at least 1")

// Resolve picks exactly one tier, first match wins:
//
//  1. a positive discount always applies, regardless of party size
//  2. a group price applies to parties of two or more
//  3. per-slot is the universal fallback
//
// The order matters: swapping 1 and 2 would silently charge the group rate
// to 2+ parties on tours that also carry a discount.
func Resolve(table Table, partySize int) (Quote, error) {
	if partySize < 1 {
		return Quote{}, ErrInvalidPartySize
	}

	tier := TierPerSlot
	unit := table.PerSlot

	switch {
	case table.Discount != nil && *table.Discount > 0:
		tier = TierDiscount
		unit = *table.Discount
	case table.Group != nil && partySize >= 2:
		tier = TierGroup
		unit = *table.Group
	}

	return Quote{
		Tier:      tier,
		UnitPrice: unit,
		PartySize: partySize,
		Total:     unit * float64(partySize),
	}, nil
}
