package domain

import (
	"github.com/shopspring/decimal"
)

type Cart struct {
	Entries []CartEntry
}

type CartEntry struct {
	Product  Product
	Quantity int
}

func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Total sums price x quantity over all entries.
func (c Cart) Total() Money {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Subtotal())
	}

	return NewMoney(total)
}

// Find returns the index of the entry for productID, or -1.
func (c Cart) Find(productID string) int {
	for i, e := range c.Entries {
		if e.Product.ID == productID {
			return i
		}
	}

	return -1
}

func (c Cart) Len() int {
	return len(c.Entries)
}

func (c Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

func (c Cart) Clone() Cart {
	if c.Entries == nil {
		return Cart{}
	}

	entries := make([]CartEntry, len(c.Entries))
	copy(entries, c.Entries)

	return Cart{Entries: entries}
}
