package service

const (
	DefaultFreeDeliveryThresholdCents int64 = 2500
	DefaultDeliveryFeeCents           int64 = 299
)

// PricingPolicy derives checkout figures from a cart subtotal. Delivery is
// free only when the subtotal is strictly above the threshold.
type PricingPolicy struct {
	FreeDeliveryThresholdCents int64
	DeliveryFeeCents           int64
}

type Quote struct {
	SubtotalCents             int64
	DeliveryFeeCents          int64
	TotalCents                int64
	AmountToFreeDeliveryCents int64
	FreeDelivery              bool
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		FreeDeliveryThresholdCents: DefaultFreeDeliveryThresholdCents,
		DeliveryFeeCents:           DefaultDeliveryFeeCents,
	}
}

func (p PricingPolicy) DeliveryFee(subtotalCents int64) int64 {
	if subtotalCents > p.FreeDeliveryThresholdCents {
		return 0
	}
	return p.DeliveryFeeCents
}

func (p PricingPolicy) GrandTotal(subtotalCents int64) int64 {
	return subtotalCents + p.DeliveryFee(subtotalCents)
}

// AmountToFreeDelivery is advisory only; DeliveryFee does not consult it.
func (p PricingPolicy) AmountToFreeDelivery(subtotalCents int64) int64 {
	return max(0, p.FreeDeliveryThresholdCents-subtotalCents)
}

func (p PricingPolicy) Quote(subtotalCents int64) Quote {
	fee := p.DeliveryFee(subtotalCents)
	return Quote{
		SubtotalCents:             subtotalCents,
		DeliveryFeeCents:          fee,
		TotalCents:                subtotalCents + fee,
		AmountToFreeDeliveryCents: p.AmountToFreeDelivery(subtotalCents),
		FreeDelivery:              subtotalCents > p.FreeDeliveryThresholdCents,
	}
}
