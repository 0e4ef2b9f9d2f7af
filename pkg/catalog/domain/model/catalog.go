package model

import (
	"errors"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

type Category struct {
	ID    string
	Name  string
	Emoji string
}

type Restaurant struct {
	ID           string
	Name         string
	ImageRef     string
	Rating       float64
	Cuisine      string
	DeliveryTime string
	DeliveryFee  string // display text, e.g. "Free" or "$2.99"
	Featured     bool
}

type OrderStatus string

const (
	Delivered  OrderStatus = "delivered"
	InProgress OrderStatus = "in-progress"
	Cancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID             string
	RestaurantName string
	ItemNames      []string
	TotalCents     int64
	Status         OrderStatus
	Date           string
}

// Source supplies the read-only sample dataset.
type Source interface {
	Categories() []Category
	Restaurants() []Restaurant
	// Menu returns the restaurant specific menu, or false when it has none.
	Menu(restaurantID string) ([]cartmodel.MenuItem, bool)
	DefaultMenu() []cartmodel.MenuItem
	PastOrders() []Order
}
