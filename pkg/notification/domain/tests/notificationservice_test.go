package tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/notification/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/notification/domain/service"
)

var errSendFailed = errors.New("sender unavailable")

type mockNotificationSender struct {
	sent        []model.Notification
	ShouldError bool
}

func (m *mockNotificationSender) Send(n model.Notification) error {
	if m.ShouldError {
		return errSendFailed
	}
	m.sent = append(m.sent, n)
	return nil
}

func (m *mockNotificationSender) Reset() {
	m.sent = nil
	m.ShouldError = false
}

type mockItemResolver struct {
	items map[string]cartmodel.MenuItem
}

func (m *mockItemResolver) MenuItem(itemID string) (cartmodel.MenuItem, error) {
	item, ok := m.items[itemID]
	if !ok {
		return cartmodel.MenuItem{}, errors.New("not found")
	}
	return item, nil
}

type unrelatedEvent struct{}

func (unrelatedEvent) Type() string { return "Unrelated" }

func setup(t *testing.T) (service.NotificationService, *mockNotificationSender) {
	t.Helper()
	sender := &mockNotificationSender{}
	items := &mockItemResolver{items: map[string]cartmodel.MenuItem{
		"m1": {ID: "m1", Name: "Classic Smash Burger"},
	}}
	return service.NewNotificationService(sender, items), sender
}

func TestNotify(t *testing.T) {
	notificationService, sender := setup(t)

	t.Run("Item added uses the menu name", func(t *testing.T) {
		sender.Reset()

		require.NoError(t, notificationService.Notify(cartmodel.ItemAddedToCart{ItemID: "m1", Quantity: 1}))

		require.Len(t, sender.sent, 1)
		n := sender.sent[0]
		assert.Equal(t, model.ItemAdded, n.Kind)
		assert.Equal(t, "Added to cart!", n.Title)
		assert.Equal(t, "Classic Smash Burger has been added.", n.Body)
		assert.False(t, n.CreatedAt.IsZero())
	})

	t.Run("Unknown item falls back to its id", func(t *testing.T) {
		sender.Reset()

		require.NoError(t, notificationService.Notify(cartmodel.ItemRemovedFromCart{ItemID: "zz"}))

		require.Len(t, sender.sent, 1)
		assert.Equal(t, model.ItemRemoved, sender.sent[0].Kind)
		assert.Equal(t, "zz has been removed.", sender.sent[0].Body)
	})

	t.Run("Quantity change and clear", func(t *testing.T) {
		sender.Reset()

		require.NoError(t, notificationService.Notify(cartmodel.CartLineQuantityChanged{ItemID: "m1", OldQuantity: 1, NewQuantity: 3}))
		require.NoError(t, notificationService.Notify(cartmodel.CartCleared{RemovedLines: 2}))

		require.Len(t, sender.sent, 2)
		assert.Equal(t, "Classic Smash Burger quantity is now 3.", sender.sent[0].Body)
		assert.Equal(t, model.CartEmptied, sender.sent[1].Kind)
		assert.Equal(t, "2 items removed.", sender.sent[1].Body)
	})

	t.Run("Unrelated events are ignored", func(t *testing.T) {
		sender.Reset()

		require.NoError(t, notificationService.Notify(unrelatedEvent{}))
		assert.Empty(t, sender.sent)
	})

	t.Run("Sender failure is returned", func(t *testing.T) {
		sender.Reset()
		sender.ShouldError = true

		err := notificationService.Notify(cartmodel.ItemAddedToCart{ItemID: "m1", Quantity: 1})
		assert.ErrorIs(t, err, errSendFailed)
		assert.ErrorContains(t, err, "send ItemAddedToCart notification")
	})
}
