package transport

import (
	"time"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	catalogmodel "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/checkout"
)

type errorResponse struct {
	Error string `json:"error"`
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type restaurantResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Rating       float64 `json:"rating"`
	Cuisine      string  `json:"cuisine"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  string  `json:"deliveryFee"`
	Featured     bool    `json:"featured"`
}

func newRestaurantResponse(r catalogmodel.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Image:        r.ImageRef,
		Rating:       r.Rating,
		Cuisine:      r.Cuisine,
		DeliveryTime: r.DeliveryTime,
		DeliveryFee:  r.DeliveryFee,
		Featured:     r.Featured,
	}
}

type menuItemResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	Price        string `json:"price"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	IsVegetarian bool   `json:"isVegetarian"`
}

func newMenuItemResponse(item cartmodel.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		PriceCents:   item.PriceCents,
		Price:        cartmodel.FormatCents(item.PriceCents),
		Image:        item.ImageRef,
		Category:     item.Category,
		IsVegetarian: item.IsVegetarian,
	}
}

type menuResponse struct {
	Categories []string           `json:"categories"`
	Items      []menuItemResponse `json:"items"`
}

type cartLineResponse struct {
	Item           menuItemResponse `json:"item"`
	Quantity       int              `json:"quantity"`
	LineTotalCents int64            `json:"lineTotalCents"`
}

type cartResponse struct {
	Items                     []cartLineResponse `json:"items"`
	TotalItems                int                `json:"totalItems"`
	SubtotalCents             int64              `json:"subtotalCents"`
	DeliveryFeeCents          int64              `json:"deliveryFeeCents"`
	TotalCents                int64              `json:"totalCents"`
	AmountToFreeDeliveryCents int64              `json:"amountToFreeDeliveryCents"`
	FreeDelivery              bool               `json:"freeDelivery"`
	FreeDeliveryHint          string             `json:"freeDeliveryHint,omitempty"`
}

type orderResponse struct {
	ID         string   `json:"id"`
	Restaurant string   `json:"restaurantName,omitempty"`
	Items      []string `json:"items"`
	TotalCents int64    `json:"totalCents"`
	Total      string   `json:"total"`
	Status     string   `json:"status"`
	Date       string   `json:"date"`
}

func newOrderResponse(o catalogmodel.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		Restaurant: o.RestaurantName,
		Items:      o.ItemNames,
		TotalCents: o.TotalCents,
		Total:      cartmodel.FormatCents(o.TotalCents),
		Status:     string(o.Status),
		Date:       o.Date,
	}
}

type attemptResponse struct {
	Status           string     `json:"status"`
	Items            []string   `json:"items"`
	SubtotalCents    int64      `json:"subtotalCents"`
	DeliveryFeeCents int64      `json:"deliveryFeeCents"`
	TotalCents       int64      `json:"totalCents"`
	SubmittedAt      time.Time  `json:"submittedAt"`
	OrderID          string     `json:"orderId,omitempty"`
	PlacedAt         *time.Time `json:"placedAt,omitempty"`
	Error            string     `json:"error,omitempty"`
}

func newAttemptResponse(a *checkout.Attempt) attemptResponse {
	quote := a.Quote()
	resp := attemptResponse{
		Status:           a.Status().String(),
		Items:            a.ItemNames(),
		SubtotalCents:    quote.SubtotalCents,
		DeliveryFeeCents: quote.DeliveryFeeCents,
		TotalCents:       quote.TotalCents,
		SubmittedAt:      a.SubmittedAt(),
	}
	if receipt, ok := a.Receipt(); ok {
		resp.OrderID = receipt.OrderID
		resp.PlacedAt = &receipt.PlacedAt
	}
	if err := a.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}
