package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	cartservice "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
	catalogmodel "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
	catalogservice "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/checkout"
	"github.com/Parshu2496/cosmic-bites/pkg/session"
)

var errNoPendingCheckout = errors.New("no pending checkout")

type Dependencies struct {
	// Context bounds checkout attempts; request contexts end too early.
	Context  context.Context
	Session  *session.Session
	Catalog  catalogservice.CatalogService
	Checkout *checkout.Simulator
	Pricing  cartservice.PricingPolicy
	Logger   log.FieldLogger
}

type Handler struct {
	ctx      context.Context
	session  *session.Session
	catalog  catalogservice.CatalogService
	checkout *checkout.Simulator
	pricing  cartservice.PricingPolicy
	logger   log.FieldLogger
}

func Router(deps Dependencies) http.Handler {
	h := &Handler{
		ctx:      deps.Context,
		session:  deps.Session,
		catalog:  deps.Catalog,
		checkout: deps.Checkout,
		pricing:  deps.Pricing,
		logger:   deps.Logger,
	}
	if h.ctx == nil {
		h.ctx = context.Background()
	}
	if h.logger == nil {
		h.logger = log.StandardLogger()
	}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	s.HandleFunc("/restaurants", h.listRestaurants).Methods(http.MethodGet)
	s.HandleFunc("/restaurants/{id}", h.getRestaurant).Methods(http.MethodGet)
	s.HandleFunc("/restaurants/{id}/menu", h.getMenu).Methods(http.MethodGet)
	s.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)

	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{itemID}", h.updateQuantity).Methods(http.MethodPut)
	s.HandleFunc("/cart/items/{itemID}", h.removeItem).Methods(http.MethodDelete)

	s.HandleFunc("/checkout", h.placeOrder).Methods(http.MethodPost)
	s.HandleFunc("/checkout", h.getCheckout).Methods(http.MethodGet)
	s.HandleFunc("/checkout", h.cancelCheckout).Methods(http.MethodDelete)

	return logMiddleware(h.logger, r)
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	categories := h.catalog.Categories()
	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{ID: c.ID, Name: c.Name, Emoji: c.Emoji})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	restaurants := h.catalog.Restaurants(query.Get("search"), catalogservice.ParseFilter(query.Get("filter")))

	resp := make([]restaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		resp = append(resp, newRestaurantResponse(restaurant))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.catalog.Restaurant(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newRestaurantResponse(restaurant))
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	categories, err := h.catalog.MenuCategories(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	items, err := h.catalog.MenuByCategory(id, r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := menuResponse{Categories: categories, Items: make([]menuItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, newMenuItemResponse(item))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listOrders(w http.ResponseWriter, _ *http.Request) {
	var placed []checkout.Receipt
	if err := h.session.Do(func(cartservice.Cart) { placed = h.checkout.Placed() }); err != nil {
		h.writeError(w, err)
		return
	}

	past := h.catalog.PastOrders()
	resp := make([]orderResponse, 0, len(placed)+len(past))
	for _, receipt := range placed {
		resp = append(resp, newOrderResponse(receipt.AsOrder()))
	}
	for _, order := range past {
		resp = append(resp, newOrderResponse(order))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	h.respondWithCart(w, http.StatusOK, func(cartservice.Cart) {})
}

func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.respondWithCart(w, http.StatusOK, func(cart cartservice.Cart) {
		cart.ClearCart()
	})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must contain itemId"})
		return
	}

	item, err := h.catalog.MenuItem(req.ItemID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.respondWithCart(w, http.StatusOK, func(cart cartservice.Cart) {
		cart.AddItem(item)
	})
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must contain quantity"})
		return
	}

	itemID := mux.Vars(r)["itemID"]
	h.respondWithCart(w, http.StatusOK, func(cart cartservice.Cart) {
		cart.UpdateQuantity(itemID, *req.Quantity)
	})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemID"]
	h.respondWithCart(w, http.StatusOK, func(cart cartservice.Cart) {
		cart.RemoveItem(itemID)
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, _ *http.Request) {
	var attempt *checkout.Attempt
	var placeErr error
	if err := h.session.Do(func(cartservice.Cart) {
		attempt, placeErr = h.checkout.PlaceOrder(h.ctx)
	}); err != nil {
		h.writeError(w, err)
		return
	}
	if placeErr != nil {
		h.writeError(w, placeErr)
		return
	}
	h.writeJSON(w, http.StatusAccepted, newAttemptResponse(attempt))
}

func (h *Handler) getCheckout(w http.ResponseWriter, _ *http.Request) {
	attempt, err := h.currentAttempt()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if attempt == nil {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no checkout has been placed"})
		return
	}
	h.writeJSON(w, http.StatusOK, newAttemptResponse(attempt))
}

func (h *Handler) cancelCheckout(w http.ResponseWriter, _ *http.Request) {
	attempt, err := h.currentAttempt()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if attempt == nil || !attempt.Cancel() {
		h.writeError(w, errNoPendingCheckout)
		return
	}
	h.writeJSON(w, http.StatusOK, newAttemptResponse(attempt))
}

func (h *Handler) currentAttempt() (*checkout.Attempt, error) {
	var attempt *checkout.Attempt
	err := h.session.Do(func(cartservice.Cart) { attempt = h.checkout.Current() })
	return attempt, err
}

// respondWithCart applies mutate on the session loop and answers with the
// resulting cart, read inside the same action.
func (h *Handler) respondWithCart(w http.ResponseWriter, status int, mutate func(cart cartservice.Cart)) {
	var resp cartResponse
	err := h.session.Do(func(cart cartservice.Cart) {
		mutate(cart)
		resp = newCartResponse(cart, h.pricing)
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case catalogmodel.ErrRestaurantNotFound, catalogmodel.ErrMenuItemNotFound:
		status = http.StatusNotFound
	case checkout.ErrEmptyCart, errNoPendingCheckout:
		status = http.StatusConflict
	case session.ErrLoopClosed:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithField("err", err).Error("write response body")
	}
}

func logMiddleware(logger log.FieldLogger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		logger.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
			"duration":   time.Since(start),
		}).Info("got a new request")
	})
}

func newCartResponse(cart cartservice.Cart, pricing cartservice.PricingPolicy) cartResponse {
	quote := pricing.Quote(cart.TotalPriceCents())
	resp := cartResponse{
		Items:                     make([]cartLineResponse, 0, len(cart.Items())),
		TotalItems:                cart.TotalItems(),
		SubtotalCents:             quote.SubtotalCents,
		DeliveryFeeCents:          quote.DeliveryFeeCents,
		TotalCents:                quote.TotalCents,
		AmountToFreeDeliveryCents: quote.AmountToFreeDeliveryCents,
		FreeDelivery:              quote.FreeDelivery,
	}
	if !quote.FreeDelivery && quote.AmountToFreeDeliveryCents > 0 {
		resp.FreeDeliveryHint = "Add " + cartmodel.FormatCents(quote.AmountToFreeDeliveryCents) + " more for free delivery"
	}
	for _, line := range cart.Items() {
		resp.Items = append(resp.Items, cartLineResponse{
			Item:           newMenuItemResponse(line.Item),
			Quantity:       line.Quantity,
			LineTotalCents: line.LineTotalCents(),
		})
	}
	return resp
}
