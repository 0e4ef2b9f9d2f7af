package service

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/common/domain"
	"github.com/Parshu2496/cosmic-bites/pkg/notification/domain/model"
)

// ItemResolver resolves a menu item id to its display name.
type ItemResolver interface {
	MenuItem(itemID string) (cartmodel.MenuItem, error)
}

type NotificationService interface {
	// Notify turns a cart event into a notification and sends it.
	// Events it does not know are ignored.
	Notify(event domain.Event) error
}

func NewNotificationService(sender model.NotificationSender, items ItemResolver) NotificationService {
	return &notificationService{sender: sender, items: items, now: time.Now}
}

type notificationService struct {
	sender model.NotificationSender
	items  ItemResolver
	now    func() time.Time
}

func (s *notificationService) Notify(event domain.Event) error {
	var n model.Notification
	switch e := event.(type) {
	case cartmodel.ItemAddedToCart:
		n = model.Notification{
			Kind:   model.ItemAdded,
			ItemID: e.ItemID,
			Title:  "Added to cart!",
			Body:   fmt.Sprintf("%s has been added.", s.itemName(e.ItemID)),
		}
	case cartmodel.CartLineQuantityChanged:
		n = model.Notification{
			Kind:   model.QuantityChanged,
			ItemID: e.ItemID,
			Title:  "Cart updated",
			Body:   fmt.Sprintf("%s quantity is now %d.", s.itemName(e.ItemID), e.NewQuantity),
		}
	case cartmodel.ItemRemovedFromCart:
		n = model.Notification{
			Kind:   model.ItemRemoved,
			ItemID: e.ItemID,
			Title:  "Removed from cart",
			Body:   fmt.Sprintf("%s has been removed.", s.itemName(e.ItemID)),
		}
	case cartmodel.CartCleared:
		n = model.Notification{
			Kind:  model.CartEmptied,
			Title: "Cart cleared",
			Body:  fmt.Sprintf("%d items removed.", e.RemovedLines),
		}
	default:
		return nil
	}
	n.CreatedAt = s.now()

	return errors.Wrapf(s.sender.Send(n), "send %s notification", event.Type())
}

func (s *notificationService) itemName(itemID string) string {
	if s.items == nil {
		return itemID
	}
	item, err := s.items.MenuItem(itemID)
	if err != nil {
		return itemID
	}
	return item.Name
}
