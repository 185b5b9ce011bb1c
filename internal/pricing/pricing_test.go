package pricing

import "testing"

func price(v float64) *float64 {
	return &v
}

func TestResolveDiscountWinsOverGroup(t *testing.T) {
	table := Table{
		PerSlot:  2200000,
		Group:    price(1800000),
		Discount: price(1500000),
	}

	quote, err := Resolve(table, 3)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if quote.Tier != TierDiscount {
		t.Fatalf("expected discount tier, got %s", quote.Tier)
	}
	if quote.UnitPrice != 1500000 {
		t.Fatalf("unexpected unit price %v", quote.UnitPrice)
	}
	if quote.Total != 4500000 {
		t.Fatalf("unexpected total %v", quote.Total)
	}
}

func TestResolveGroupNeedsPartyOfTwo(t *testing.T) {
	table := Table{
		PerSlot: 2200000,
		Group:   price(1800000),
	}

	quote, err := Resolve(table, 2)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if quote.Tier != TierGroup || quote.UnitPrice != 1800000 || quote.Total != 3600000 {
		t.Fatalf("unexpected group quote %+v", quote)
	}

	quote, err = Resolve(table, 1)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if quote.Tier != TierPerSlot || quote.UnitPrice != 2200000 || quote.Total != 2200000 {
		t.Fatalf("unexpected solo quote %+v", quote)
	}
}

func TestResolveFallsBackToPerSlot(t *testing.T) {
	quote, err := Resolve(Table{PerSlot: 6000000}, 4)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if quote.Tier != TierPerSlot {
		t.Fatalf("expected per-slot tier, got %s", quote.Tier)
	}
	if quote.Total != 24000000 {
		t.Fatalf("unexpected total %v", quote.Total)
	}
}

func TestResolveAbsentTierIsNotZeroPrice(t *testing.T) {
	// A discount explicitly set to zero is "not offered", same as absent.
	table := Table{
		PerSlot:  500000,
		Discount: price(0),
	}

	quote, err := Resolve(table, 2)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if quote.Tier != TierPerSlot {
		t.Fatalf("zero discount must not be selected, got %s", quote.Tier)
	}
}

func TestResolveRejectsNonPositivePartySize(t *testing.T) {
	for _, size := range []int{0, -1, -10} {
		if _, err := Resolve(Table{PerSlot: 100}, size); err != ErrInvalidPartySize {
			t.Fatalf("party size %d: expected ErrInvalidPartySize, got %v", size, err)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	table := Table{
		PerSlot:  2200000,
		Group:    price(1800000),
		Discount: price(1500000),
	}

	first, err := Resolve(table, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	second, err := Resolve(table, 5)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs produced %+v and %+v", first, second)
	}
}
