package service

import (
	"strings"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
)

type RestaurantFilter string

const (
	FilterAll          RestaurantFilter = "All"
	FilterFreeDelivery RestaurantFilter = "Free Delivery"
	FilterTopRated     RestaurantFilter = "Top Rated"
	FilterFastest      RestaurantFilter = "Fastest"
)

const topRatedMinRating = 4.5

var Filters = []RestaurantFilter{FilterAll, FilterFreeDelivery, FilterTopRated, FilterFastest}

// ParseFilter maps a user supplied filter name onto a RestaurantFilter.
// Matching is case-insensitive; unknown and empty names mean FilterAll.
func ParseFilter(name string) RestaurantFilter {
	for _, f := range Filters {
		if strings.EqualFold(string(f), strings.TrimSpace(name)) {
			return f
		}
	}
	return FilterAll
}

type CatalogService interface {
	Categories() []model.Category
	Restaurants(query string, filter RestaurantFilter) []model.Restaurant
	Featured() []model.Restaurant
	Restaurant(id string) (model.Restaurant, error)
	Menu(restaurantID string) ([]cartmodel.MenuItem, error)
	MenuCategories(restaurantID string) ([]string, error)
	MenuByCategory(restaurantID, category string) ([]cartmodel.MenuItem, error)
	MenuItem(itemID string) (cartmodel.MenuItem, error)
	PastOrders() []model.Order
}

func NewCatalogService(source model.Source) CatalogService {
	return &catalogService{source: source}
}

type catalogService struct {
	source model.Source
}

func (s *catalogService) Categories() []model.Category {
	return s.source.Categories()
}

func (s *catalogService) Restaurants(query string, filter RestaurantFilter) []model.Restaurant {
	query = strings.ToLower(strings.TrimSpace(query))

	var result []model.Restaurant
	for _, r := range s.source.Restaurants() {
		if !matchesQuery(r, query) || !matchesFilter(r, filter) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func (s *catalogService) Featured() []model.Restaurant {
	var result []model.Restaurant
	for _, r := range s.source.Restaurants() {
		if r.Featured {
			result = append(result, r)
		}
	}
	return result
}

func (s *catalogService) Restaurant(id string) (model.Restaurant, error) {
	for _, r := range s.source.Restaurants() {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Restaurant{}, model.ErrRestaurantNotFound
}

// Menu falls back to the default menu for restaurants without their own.
func (s *catalogService) Menu(restaurantID string) ([]cartmodel.MenuItem, error) {
	if _, err := s.Restaurant(restaurantID); err != nil {
		return nil, err
	}
	if menu, ok := s.source.Menu(restaurantID); ok {
		return menu, nil
	}
	return s.source.DefaultMenu(), nil
}

func (s *catalogService) MenuCategories(restaurantID string) ([]string, error) {
	menu, err := s.Menu(restaurantID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, item := range menu {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	return categories, nil
}

func (s *catalogService) MenuByCategory(restaurantID, category string) ([]cartmodel.MenuItem, error) {
	menu, err := s.Menu(restaurantID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return menu, nil
	}

	var result []cartmodel.MenuItem
	for _, item := range menu {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *catalogService) MenuItem(itemID string) (cartmodel.MenuItem, error) {
	for _, r := range s.source.Restaurants() {
		menu, ok := s.source.Menu(r.ID)
		if !ok {
			continue
		}
		if item, found := findItem(menu, itemID); found {
			return item, nil
		}
	}
	if item, found := findItem(s.source.DefaultMenu(), itemID); found {
		return item, nil
	}
	return cartmodel.MenuItem{}, model.ErrMenuItemNotFound
}

func (s *catalogService) PastOrders() []model.Order {
	return s.source.PastOrders()
}

func matchesQuery(r model.Restaurant, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), query) ||
		strings.Contains(strings.ToLower(r.Cuisine), query)
}

func matchesFilter(r model.Restaurant, filter RestaurantFilter) bool {
	switch filter {
	case FilterFreeDelivery:
		return r.DeliveryFee == "Free"
	case FilterTopRated:
		return r.Rating >= topRatedMinRating
	case FilterFastest:
		return strings.HasPrefix(r.DeliveryTime, "1") || strings.HasPrefix(r.DeliveryTime, "2")
	default:
		return true
	}
}

func findItem(menu []cartmodel.MenuItem, itemID string) (cartmodel.MenuItem, bool) {
	for _, item := range menu {
		if item.ID == itemID {
			return item, true
		}
	}
	return cartmodel.MenuItem{}, false
}
