package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	cartmodel "github.com/Parshu2496/cosmic-bites/pkg/cart/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/infrastructure/memory"
)

type catalogJSON struct {
	Categories  []categoryJSON            `json:"categories"`
	Restaurants []restaurantJSON          `json:"restaurants"`
	Menus       map[string][]menuItemJSON `json:"menus"`
	DefaultMenu []menuItemJSON            `json:"defaultMenu"`
	PastOrders  []orderJSON               `json:"pastOrders"`
}

type categoryJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type restaurantJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Rating       float64 `json:"rating"`
	Cuisine      string  `json:"cuisine"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  string  `json:"deliveryFee"`
	Featured     bool    `json:"featured,omitempty"`
}

type menuItemJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	IsVegetarian bool   `json:"isVegetarian,omitempty"`
}

type orderJSON struct {
	ID         string   `json:"id"`
	Restaurant string   `json:"restaurantName"`
	Items      []string `json:"items"`
	TotalCents int64    `json:"totalCents"`
	Status     string   `json:"status"`
	Date       string   `json:"date"`
}

// LoadCatalog reads a catalog file into an in-memory source.
func LoadCatalog(filePath string) (*memory.Source, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var data catalogJSON
	if err = json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "parse catalog %s", filePath)
	}

	dataset := data.toDataset()
	if err = validate(dataset); err != nil {
		return nil, errors.Wrapf(err, "invalid catalog %s", filePath)
	}
	return memory.NewSourceFromDataset(dataset), nil
}

func SaveCatalog(filePath string, dataset memory.Dataset) error {
	jsonData, err := json.MarshalIndent(fromDataset(dataset), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, jsonData, 0666)
}

// validate requires unique restaurant ids, menus that belong to a known
// restaurant and item ids that are unique across all menus, since items are
// looked up by id alone.
func validate(d memory.Dataset) error {
	var result *multierror.Error

	restaurants := make(map[string]bool, len(d.Restaurants))
	for _, r := range d.Restaurants {
		if restaurants[r.ID] {
			result = multierror.Append(result, errors.Errorf("duplicate restaurant id %q", r.ID))
		}
		restaurants[r.ID] = true
	}

	items := make(map[string]bool)
	checkItems := func(menu []cartmodel.MenuItem) {
		for _, item := range menu {
			if items[item.ID] {
				result = multierror.Append(result, errors.Errorf("duplicate menu item id %q", item.ID))
			}
			items[item.ID] = true
			if item.PriceCents < 0 {
				result = multierror.Append(result, errors.Errorf("menu item %q has a negative price", item.ID))
			}
		}
	}
	for id, menu := range d.Menus {
		if !restaurants[id] {
			result = multierror.Append(result, errors.Errorf("menu for unknown restaurant %q", id))
		}
		checkItems(menu)
	}
	checkItems(d.DefaultMenu)

	for _, o := range d.PastOrders {
		switch model.OrderStatus(o.Status) {
		case model.Delivered, model.InProgress, model.Cancelled:
		default:
			result = multierror.Append(result, errors.Errorf("order %q has unknown status %q", o.ID, o.Status))
		}
	}

	return result.ErrorOrNil()
}

func (c catalogJSON) toDataset() memory.Dataset {
	d := memory.Dataset{Menus: make(map[string][]cartmodel.MenuItem, len(c.Menus))}
	for _, cat := range c.Categories {
		d.Categories = append(d.Categories, model.Category{ID: cat.ID, Name: cat.Name, Emoji: cat.Emoji})
	}
	for _, r := range c.Restaurants {
		d.Restaurants = append(d.Restaurants, model.Restaurant{
			ID:           r.ID,
			Name:         r.Name,
			ImageRef:     r.Image,
			Rating:       r.Rating,
			Cuisine:      r.Cuisine,
			DeliveryTime: r.DeliveryTime,
			DeliveryFee:  r.DeliveryFee,
			Featured:     r.Featured,
		})
	}
	for id, menu := range c.Menus {
		d.Menus[id] = toMenu(menu)
	}
	d.DefaultMenu = toMenu(c.DefaultMenu)
	for _, o := range c.PastOrders {
		d.PastOrders = append(d.PastOrders, model.Order{
			ID:             o.ID,
			RestaurantName: o.Restaurant,
			ItemNames:      o.Items,
			TotalCents:     o.TotalCents,
			Status:         model.OrderStatus(o.Status),
			Date:           o.Date,
		})
	}
	return d
}

func toMenu(items []menuItemJSON) []cartmodel.MenuItem {
	menu := make([]cartmodel.MenuItem, 0, len(items))
	for _, item := range items {
		menu = append(menu, cartmodel.MenuItem{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			PriceCents:   item.PriceCents,
			ImageRef:     item.Image,
			Category:     item.Category,
			IsVegetarian: item.IsVegetarian,
		})
	}
	return menu
}

func fromDataset(d memory.Dataset) catalogJSON {
	c := catalogJSON{Menus: make(map[string][]menuItemJSON, len(d.Menus))}
	for _, cat := range d.Categories {
		c.Categories = append(c.Categories, categoryJSON{ID: cat.ID, Name: cat.Name, Emoji: cat.Emoji})
	}
	for _, r := range d.Restaurants {
		c.Restaurants = append(c.Restaurants, restaurantJSON{
			ID:           r.ID,
			Name:         r.Name,
			Image:        r.ImageRef,
			Rating:       r.Rating,
			Cuisine:      r.Cuisine,
			DeliveryTime: r.DeliveryTime,
			DeliveryFee:  r.DeliveryFee,
			Featured:     r.Featured,
		})
	}
	for id, menu := range d.Menus {
		c.Menus[id] = fromMenu(menu)
	}
	c.DefaultMenu = fromMenu(d.DefaultMenu)
	for _, o := range d.PastOrders {
		c.PastOrders = append(c.PastOrders, orderJSON{
			ID:         o.ID,
			Restaurant: o.RestaurantName,
			Items:      o.ItemNames,
			TotalCents: o.TotalCents,
			Status:     string(o.Status),
			Date:       o.Date,
		})
	}
	return c
}

func fromMenu(menu []cartmodel.MenuItem) []menuItemJSON {
	items := make([]menuItemJSON, 0, len(menu))
	for _, item := range menu {
		items = append(items, menuItemJSON{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			PriceCents:   item.PriceCents,
			Image:        item.ImageRef,
			Category:     item.Category,
			IsVegetarian: item.IsVegetarian,
		})
	}
	return items
}
