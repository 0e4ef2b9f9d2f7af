package model

type ItemAddedToCart struct {
	ItemID   string
	Quantity int
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type CartLineQuantityChanged struct {
	ItemID      string
	OldQuantity int
	NewQuantity int
}

func (e CartLineQuantityChanged) Type() string { return "CartLineQuantityChanged" }

type ItemRemovedFromCart struct {
	ItemID string
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartCleared struct {
	RemovedLines int
}

func (e CartCleared) Type() string { return "CartCleared" }
