package memory

import (
	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
)

var _ model.Source = &Source{}

// Source serves a fixed dataset. Callers receive copies.
type Source struct {
	categories  []model.Category
	restaurants []model.Restaurant
	menus       map[string][]cartmodel.MenuItem
	defaultMenu []cartmodel.MenuItem
	pastOrders  []model.Order
}

// Dataset is the full content a Source serves.
type Dataset struct {
	Categories  []model.Category
	Restaurants []model.Restaurant
	Menus       map[string][]cartmodel.MenuItem
	DefaultMenu []cartmodel.MenuItem
	PastOrders  []model.Order
}

// SampleDataset returns the built-in sample data.
func SampleDataset() Dataset {
	return Dataset{
		Categories:  sampleCategories,
		Restaurants: sampleRestaurants,
		Menus:       sampleMenus,
		DefaultMenu: sampleDefaultMenu,
		PastOrders:  samplePastOrders,
	}
}

func NewSource() *Source {
	return NewSourceFromDataset(SampleDataset())
}

func NewSourceFromDataset(d Dataset) *Source {
	menus := make(map[string][]cartmodel.MenuItem, len(d.Menus))
	for id, menu := range d.Menus {
		menus[id] = menu
	}
	return &Source{
		categories:  d.Categories,
		restaurants: d.Restaurants,
		menus:       menus,
		defaultMenu: d.DefaultMenu,
		pastOrders:  d.PastOrders,
	}
}

func (s *Source) Categories() []model.Category {
	return append([]model.Category(nil), s.categories...)
}

func (s *Source) Restaurants() []model.Restaurant {
	return append([]model.Restaurant(nil), s.restaurants...)
}

func (s *Source) Menu(restaurantID string) ([]cartmodel.MenuItem, bool) {
	menu, ok := s.menus[restaurantID]
	if !ok {
		return nil, false
	}
	return append([]cartmodel.MenuItem(nil), menu...), true
}

func (s *Source) DefaultMenu() []cartmodel.MenuItem {
	return append([]cartmodel.MenuItem(nil), s.defaultMenu...)
}

func (s *Source) PastOrders() []model.Order {
	orders := make([]model.Order, len(s.pastOrders))
	for i, o := range s.pastOrders {
		o.ItemNames = append([]string(nil), o.ItemNames...)
		orders[i] = o
	}
	return orders
}

var sampleCategories = []model.Category{
	{ID: "pizza", Name: "Pizza", Emoji: "🍕"},
	{ID: "burger", Name: "Burgers", Emoji: "🍔"},
	{ID: "sushi", Name: "Sushi", Emoji: "🍣"},
	{ID: "salad", Name: "Salads", Emoji: "🥗"},
	{ID: "dessert", Name: "Desserts", Emoji: "🍰"},
	{ID: "curry", Name: "Curry", Emoji: "🍛"},
	{ID: "pasta", Name: "Pasta", Emoji: "🍝"},
}

var sampleRestaurants = []model.Restaurant{
	{ID: "1", Name: "The Burger Joint", ImageRef: "restaurant1.jpg", Rating: 4.5, Cuisine: "American · Burgers", DeliveryTime: "25-35 min", DeliveryFee: "Free", Featured: true},
	{ID: "2", Name: "Bella Italia", ImageRef: "restaurant2.jpg", Rating: 4.8, Cuisine: "Italian · Pizza · Pasta", DeliveryTime: "30-40 min", DeliveryFee: "$2.99"},
	{ID: "3", Name: "Tokyo Express", ImageRef: "restaurant3.jpg", Rating: 4.3, Cuisine: "Japanese · Sushi", DeliveryTime: "20-30 min", DeliveryFee: "Free", Featured: true},
	{ID: "4", Name: "Green Bowl", ImageRef: "salad.jpg", Rating: 4.6, Cuisine: "Healthy · Salads · Bowls", DeliveryTime: "15-25 min", DeliveryFee: "$1.99"},
	{ID: "5", Name: "Spice Route", ImageRef: "curry.jpg", Rating: 4.7, Cuisine: "Indian · Curry", DeliveryTime: "30-45 min", DeliveryFee: "Free"},
	{ID: "6", Name: "Sweet Surrender", ImageRef: "dessert.jpg", Rating: 4.4, Cuisine: "Desserts · Bakery", DeliveryTime: "20-30 min", DeliveryFee: "$2.49"},
}

var sampleMenus = map[string][]cartmodel.MenuItem{
	"1": {
		{ID: "m1", Name: "Classic Smash Burger", Description: "Double patty, cheddar, pickles, secret sauce", PriceCents: 1299, ImageRef: "burger.jpg", Category: "Burgers"},
		{ID: "m2", Name: "Bacon BBQ Burger", Description: "Crispy bacon, BBQ glaze, onion rings", PriceCents: 1499, ImageRef: "burger.jpg", Category: "Burgers"},
		{ID: "m3", Name: "Truffle Fries", Description: "Hand-cut fries, truffle oil, parmesan", PriceCents: 799, ImageRef: "salad.jpg", Category: "Sides"},
		{ID: "m4", Name: "Caesar Salad", Description: "Romaine, croutons, parmesan, caesar dressing", PriceCents: 999, ImageRef: "salad.jpg", Category: "Salads", IsVegetarian: true},
		{ID: "m5", Name: "Chocolate Shake", Description: "Rich chocolate milkshake with whipped cream", PriceCents: 699, ImageRef: "dessert.jpg", Category: "Drinks"},
		{ID: "m6", Name: "Mushroom Swiss Burger", Description: "Sautéed mushrooms, swiss cheese, herb aioli", PriceCents: 1399, ImageRef: "burger.jpg", Category: "Burgers", IsVegetarian: true},
	},
	"2": {
		{ID: "m7", Name: "Margherita Pizza", Description: "San Marzano tomatoes, fresh mozzarella, basil", PriceCents: 1599, ImageRef: "pizza.jpg", Category: "Pizza", IsVegetarian: true},
		{ID: "m8", Name: "Pepperoni Pizza", Description: "Classic pepperoni, mozzarella, tomato sauce", PriceCents: 1799, ImageRef: "pizza.jpg", Category: "Pizza"},
		{ID: "m9", Name: "Pesto Pasta", Description: "Fresh basil pesto, pine nuts, parmesan", PriceCents: 1399, ImageRef: "pasta.jpg", Category: "Pasta", IsVegetarian: true},
		{ID: "m10", Name: "Tiramisu", Description: "Classic Italian coffee-flavored dessert", PriceCents: 899, ImageRef: "dessert.jpg", Category: "Desserts"},
	},
	"3": {
		{ID: "m11", Name: "Salmon Nigiri", Description: "Fresh Atlantic salmon, seasoned rice", PriceCents: 1299, ImageRef: "sushi.jpg", Category: "Sushi"},
		{ID: "m12", Name: "Dragon Roll", Description: "Eel, avocado, cucumber, spicy mayo", PriceCents: 1699, ImageRef: "sushi.jpg", Category: "Sushi"},
		{ID: "m13", Name: "Miso Soup", Description: "Traditional miso with tofu and seaweed", PriceCents: 499, ImageRef: "salad.jpg", Category: "Soups", IsVegetarian: true},
		{ID: "m14", Name: "Edamame", Description: "Steamed soybeans with sea salt", PriceCents: 599, ImageRef: "salad.jpg", Category: "Sides", IsVegetarian: true},
	},
}

var sampleDefaultMenu = []cartmodel.MenuItem{
	{ID: "d1", Name: "Signature Dish", Description: "Chef's special creation of the day", PriceCents: 1699, ImageRef: "curry.jpg", Category: "Mains"},
	{ID: "d2", Name: "House Salad", Description: "Fresh seasonal greens with vinaigrette", PriceCents: 899, ImageRef: "salad.jpg", Category: "Starters", IsVegetarian: true},
	{ID: "d3", Name: "Dessert of the Day", Description: "Ask your server for today's selection", PriceCents: 999, ImageRef: "dessert.jpg", Category: "Desserts"},
}

var samplePastOrders = []model.Order{
	{ID: "ORD-001", RestaurantName: "The Burger Joint", ItemNames: []string{"Classic Smash Burger", "Truffle Fries"}, TotalCents: 2098, Status: model.Delivered, Date: "Feb 5, 2026"},
	{ID: "ORD-002", RestaurantName: "Bella Italia", ItemNames: []string{"Margherita Pizza", "Tiramisu"}, TotalCents: 2498, Status: model.Delivered, Date: "Feb 3, 2026"},
	{ID: "ORD-003", RestaurantName: "Tokyo Express", ItemNames: []string{"Dragon Roll", "Miso Soup"}, TotalCents: 2198, Status: model.InProgress, Date: "Feb 7, 2026"},
	{ID: "ORD-004", RestaurantName: "Green Bowl", ItemNames: []string{"House Salad"}, TotalCents: 899, Status: model.Cancelled, Date: "Jan 28, 2026"},
}
