package model

import "fmt"

// MenuItem is catalog reference data. The cart never mutates it.
type MenuItem struct {
	ID           string
	Name         string
	Description  string
	PriceCents   int64
	ImageRef     string
	Category     string
	IsVegetarian bool
}

type CartLine struct {
	Item     MenuItem
	Quantity int
}

func (l CartLine) LineTotalCents() int64 {
	return l.Item.PriceCents * int64(l.Quantity)
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
