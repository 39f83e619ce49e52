package domain

import "github.com/shopspring/decimal"

// Product is a catalog item. Values are copied into the cart on add,
// so a Product held by a CartEntry never changes after the fact.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}
