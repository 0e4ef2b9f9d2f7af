package session

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/common/domain"
)

func TestSessionNotifiesSubscribers(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(logger)
	defer s.Close()

	var seenTotals []int64
	var seenTypes []string
	unsubscribe := s.Subscribe(func(e domain.Event) error {
		seenTypes = append(seenTypes, e.Type())
		seenTotals = append(seenTotals, s.Cart().TotalPriceCents())
		return nil
	})

	require.NoError(t, s.Do(func(cart service.Cart) {
		cart.AddItem(model.MenuItem{ID: "m1", PriceCents: 1299})
		cart.AddItem(model.MenuItem{ID: "m1", PriceCents: 1299})
		cart.RemoveItem("missing")
		cart.UpdateQuantity("m1", 0)
	}))

	assert.Equal(t, []string{"ItemAddedToCart", "ItemAddedToCart", "ItemRemovedFromCart"}, seenTypes)
	assert.Equal(t, []int64{1299, 2598, 0}, seenTotals)

	unsubscribe()
	require.NoError(t, s.Do(func(cart service.Cart) {
		cart.AddItem(model.MenuItem{ID: "m2", PriceCents: 100})
	}))
	assert.Len(t, seenTypes, 3)
}

func TestSessionClosed(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(logger)
	s.Close()

	err := s.Do(func(service.Cart) {})
	assert.ErrorIs(t, err, ErrLoopClosed)
	assert.False(t, s.Post(func(service.Cart) {}))
}
