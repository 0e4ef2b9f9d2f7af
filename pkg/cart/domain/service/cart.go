package service

import (
	"github.com/sirupsen/logrus"

	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/common/domain"
)

// Cart is the session's current selection of menu items.
// Implementations are not safe for concurrent use; drive them from a
// single session loop.
type Cart interface {
	AddItem(item model.MenuItem)
	UpdateQuantity(itemID string, newQuantity int)
	RemoveItem(itemID string)
	ClearCart()

	Items() []model.CartLine
	Line(itemID string) (model.CartLine, bool)
	TotalItems() int
	TotalPriceCents() int64
	IsEmpty() bool
}

func NewCart(dispatcher domain.EventDispatcher, logger logrus.FieldLogger) Cart {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &cart{dispatcher: dispatcher, logger: logger}
}

type cart struct {
	dispatcher domain.EventDispatcher
	logger     logrus.FieldLogger

	lines           []model.CartLine
	totalItems      int
	totalPriceCents int64
}

func (c *cart) AddItem(item model.MenuItem) {
	if item.PriceCents < 0 {
		c.logger.WithFields(logrus.Fields{
			"item_id":     item.ID,
			"price_cents": item.PriceCents,
		}).Warn("negative menu item price clamped to zero")
		item.PriceCents = 0
	}

	quantity := 1
	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity++
		quantity = c.lines[i].Quantity
	} else {
		c.lines = append(c.lines, model.CartLine{Item: item, Quantity: 1})
	}
	c.recalculateTotals()

	c.dispatch(model.ItemAddedToCart{ItemID: item.ID, Quantity: quantity})
}

func (c *cart) UpdateQuantity(itemID string, newQuantity int) {
	if newQuantity <= 0 {
		c.RemoveItem(itemID)
		return
	}

	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	oldQuantity := c.lines[i].Quantity
	if oldQuantity == newQuantity {
		return
	}

	c.lines[i].Quantity = newQuantity
	c.recalculateTotals()

	c.dispatch(model.CartLineQuantityChanged{
		ItemID:      itemID,
		OldQuantity: oldQuantity,
		NewQuantity: newQuantity,
	})
}

func (c *cart) RemoveItem(itemID string) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.recalculateTotals()

	c.dispatch(model.ItemRemovedFromCart{ItemID: itemID})
}

func (c *cart) ClearCart() {
	removed := len(c.lines)
	if removed == 0 {
		return
	}

	c.lines = nil
	c.recalculateTotals()

	c.dispatch(model.CartCleared{RemovedLines: removed})
}

func (c *cart) Items() []model.CartLine {
	items := make([]model.CartLine, len(c.lines))
	copy(items, c.lines)
	return items
}

func (c *cart) Line(itemID string) (model.CartLine, bool) {
	if i := c.indexOf(itemID); i >= 0 {
		return c.lines[i], true
	}
	return model.CartLine{}, false
}

func (c *cart) TotalItems() int {
	return c.totalItems
}

func (c *cart) TotalPriceCents() int64 {
	return c.totalPriceCents
}

func (c *cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *cart) indexOf(itemID string) int {
	for i, line := range c.lines {
		if line.Item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *cart) recalculateTotals() {
	var items int
	var total int64
	for _, line := range c.lines {
		items += line.Quantity
		total += line.LineTotalCents()
	}
	c.totalItems = items
	c.totalPriceCents = total
}

func (c *cart) dispatch(event domain.Event) {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Dispatch(event); err != nil {
		c.logger.WithError(err).WithField("event", event.Type()).Error("failed to dispatch cart event")
	}
}
