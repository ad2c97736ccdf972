package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Product is a coffee listed in the Beanmart catalog.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Roast       string    `json:"roast"`
	Origin      string    `json:"origin,omitempty"`
	Notes       []string  `json:"notes,omitempty"` // tasting notes
	Description string    `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents"`
	WeightGrams int       `json:"weight_grams,omitempty"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Valid roast levels.
var ValidRoasts = []string{
	"light",
	"medium",
	"medium-dark",
	"dark",
	"espresso",
	"decaf",
}

var validRoastSet = func() map[string]bool {
	m := make(map[string]bool, len(ValidRoasts))
	for _, r := range ValidRoasts {
		m[r] = true
	}
	return m
}()

// ValidRoast returns true if the given roast is a known roast level.
func ValidRoast(roast string) bool {
	return validRoastSet[roast]
}

// FormatPrice renders an amount in cents as dollars, e.g. 1850 -> "$18.50".
func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
