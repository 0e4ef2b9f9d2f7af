package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartservice "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	catalogservice "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/infrastructure/memory"
	"github.com/Parshu2496/cosmic-bites/pkg/checkout"
	"github.com/Parshu2496/cosmic-bites/pkg/session"
)

type fixture struct {
	router http.Handler
	hook   *test.Hook
}

func setup(t *testing.T, checkoutDelay time.Duration) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	s := session.New(logger)
	t.Cleanup(s.Close)

	pricing := cartservice.DefaultPricingPolicy()
	router := Router(Dependencies{
		Context:  context.Background(),
		Session:  s,
		Catalog:  catalogservice.NewCatalogService(memory.NewSource()),
		Checkout: checkout.NewSimulator(s.Loop(), s.Cart(), pricing, checkoutDelay, logger),
		Pricing:  pricing,
		Logger:   logger,
	})
	return &fixture{router: router, hook: hook}
}

func (f *fixture) do(t *testing.T, method, target, body string, out interface{}) int {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if out != nil {
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func restaurantIDs(restaurants []restaurantResponse) []string {
	ids := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestCatalogRoutes(t *testing.T) {
	f := setup(t, time.Hour)

	t.Run("Categories", func(t *testing.T) {
		var categories []categoryResponse
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/categories", "", &categories))
		require.Len(t, categories, 7)
		assert.Equal(t, categoryResponse{ID: "pizza", Name: "Pizza", Emoji: "🍕"}, categories[0])
	})

	t.Run("Restaurants with search and filter", func(t *testing.T) {
		cases := []struct {
			target   string
			expected []string
		}{
			{"/api/v1/restaurants", []string{"1", "2", "3", "4", "5", "6"}},
			{"/api/v1/restaurants?filter=Free%20Delivery", []string{"1", "3", "5"}},
			{"/api/v1/restaurants?filter=top%20rated", []string{"1", "2", "4", "5"}},
			{"/api/v1/restaurants?filter=Fastest", []string{"1", "3", "4", "6"}},
			{"/api/v1/restaurants?search=sushi", []string{"3"}},
			{"/api/v1/restaurants?search=burger&filter=Free%20Delivery", []string{"1"}},
			{"/api/v1/restaurants?filter=unknown", []string{"1", "2", "3", "4", "5", "6"}},
		}
		for _, c := range cases {
			var restaurants []restaurantResponse
			assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, c.target, "", &restaurants), c.target)
			assert.Equal(t, c.expected, restaurantIDs(restaurants), c.target)
		}
	})

	t.Run("Restaurant by id", func(t *testing.T) {
		var restaurant restaurantResponse
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/restaurants/2", "", &restaurant))
		assert.Equal(t, "Bella Italia", restaurant.Name)
		assert.Equal(t, 4.8, restaurant.Rating)

		var errResp errorResponse
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/restaurants/42", "", &errResp))
		assert.NotEmpty(t, errResp.Error)
	})

	t.Run("Menu", func(t *testing.T) {
		var menu menuResponse
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/restaurants/1/menu", "", &menu))
		assert.Equal(t, []string{"Burgers", "Sides", "Salads", "Drinks"}, menu.Categories)
		assert.Len(t, menu.Items, 6)
		assert.Equal(t, "$12.99", menu.Items[0].Price)

		menu = menuResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/restaurants/1/menu?category=Burgers", "", &menu))
		assert.Len(t, menu.Items, 3)

		menu = menuResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/restaurants/5/menu", "", &menu))
		require.Len(t, menu.Items, 3)
		assert.Equal(t, "d1", menu.Items[0].ID)

		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/restaurants/42/menu", "", &errorResponse{}))
	})

	t.Run("Past orders", func(t *testing.T) {
		var orders []orderResponse
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/orders", "", &orders))
		require.Len(t, orders, 4)
		assert.Equal(t, "ORD-001", orders[0].ID)
		assert.Equal(t, "$20.98", orders[0].Total)
		assert.Equal(t, "delivered", orders[0].Status)
	})
}

func TestCartRoutes(t *testing.T) {
	f := setup(t, time.Hour)

	var cart cartResponse
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/cart", "", &cart))
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(299), cart.DeliveryFeeCents)

	t.Run("Add resolves items from the catalog", func(t *testing.T) {
		cart = cartResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/cart/items", `{"itemId":"m1"}`, &cart))
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/cart/items", `{"itemId":"d2"}`, &cart))

		require.Len(t, cart.Items, 2)
		assert.Equal(t, "Classic Smash Burger", cart.Items[0].Item.Name)
		assert.Equal(t, "House Salad", cart.Items[1].Item.Name)
		assert.Equal(t, 2, cart.TotalItems)
		assert.Equal(t, int64(2198), cart.SubtotalCents)
		assert.Equal(t, int64(2497), cart.TotalCents)
		assert.Equal(t, int64(302), cart.AmountToFreeDeliveryCents)
		assert.Equal(t, "Add $3.02 more for free delivery", cart.FreeDeliveryHint)
	})

	t.Run("Add rejects bad input", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/v1/cart/items", `{`, &errorResponse{}))
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/v1/cart/items", `{}`, &errorResponse{}))
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/v1/cart/items", `{"itemId":"nope"}`, &errorResponse{}))
	})

	t.Run("Update quantity", func(t *testing.T) {
		cart = cartResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/cart/items/m1", `{"quantity":3}`, &cart))
		assert.Equal(t, 4, cart.TotalItems)
		assert.Equal(t, int64(3*1299+899), cart.SubtotalCents)
		assert.True(t, cart.FreeDelivery)
		assert.Empty(t, cart.FreeDeliveryHint)

		cart = cartResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/cart/items/d2", `{"quantity":0}`, &cart))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "m1", cart.Items[0].Item.ID)

		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/api/v1/cart/items/m1", `{}`, &errorResponse{}))
	})

	t.Run("Remove and clear", func(t *testing.T) {
		cart = cartResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/v1/cart/items/unknown", "", &cart))
		assert.Len(t, cart.Items, 1)

		cart = cartResponse{}
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/v1/cart", "", &cart))
		assert.Empty(t, cart.Items)
		assert.Equal(t, int64(0), cart.SubtotalCents)
		assert.Equal(t, int64(299), cart.TotalCents)
	})
}

func TestCheckoutRoutes(t *testing.T) {
	t.Run("Empty cart conflicts", func(t *testing.T) {
		f := setup(t, time.Hour)

		var errResp errorResponse
		assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/v1/checkout", "", &errResp))
		assert.Equal(t, checkout.ErrEmptyCart.Error(), errResp.Error)
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/checkout", "", &errorResponse{}))
	})

	t.Run("Placed order clears the cart and shows up in orders", func(t *testing.T) {
		f := setup(t, 10*time.Millisecond)
		f.do(t, http.MethodPost, "/api/v1/cart/items", `{"itemId":"m12"}`, &cartResponse{})

		var attempt attemptResponse
		assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/api/v1/checkout", "", &attempt))
		assert.Equal(t, "pending", attempt.Status)
		assert.Equal(t, int64(1699+299), attempt.TotalCents)

		assert.Eventually(t, func() bool {
			var current attemptResponse
			f.do(t, http.MethodGet, "/api/v1/checkout", "", &current)
			return current.Status == "placed"
		}, 5*time.Second, 10*time.Millisecond)

		var cart cartResponse
		f.do(t, http.MethodGet, "/api/v1/cart", "", &cart)
		assert.Empty(t, cart.Items)

		var orders []orderResponse
		f.do(t, http.MethodGet, "/api/v1/orders", "", &orders)
		require.Len(t, orders, 5)
		assert.True(t, strings.HasPrefix(orders[0].ID, "ORD-"))
		assert.Equal(t, []string{"Dragon Roll"}, orders[0].Items)
		assert.Equal(t, "in-progress", orders[0].Status)
	})

	t.Run("Cancel keeps the cart", func(t *testing.T) {
		f := setup(t, time.Hour)
		f.do(t, http.MethodPost, "/api/v1/cart/items", `{"itemId":"m7"}`, &cartResponse{})
		f.do(t, http.MethodPost, "/api/v1/checkout", "", &attemptResponse{})

		var attempt attemptResponse
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/v1/checkout", "", &attempt))
		assert.Equal(t, "cancelled", attempt.Status)
		assert.Equal(t, http.StatusConflict, f.do(t, http.MethodDelete, "/api/v1/checkout", "", &errorResponse{}))

		var cart cartResponse
		f.do(t, http.MethodGet, "/api/v1/cart", "", &cart)
		assert.Equal(t, 1, cart.TotalItems)
	})
}

func TestRequestsAreLogged(t *testing.T) {
	f := setup(t, time.Hour)
	f.do(t, http.MethodGet, "/api/v1/categories", "", &[]categoryResponse{})

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "got a new request", entry.Message)
	assert.Equal(t, http.MethodGet, entry.Data["method"])
}
