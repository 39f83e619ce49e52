package repository

import (
	"encoding/json"
	"fmt"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/shopspring/decimal"
)

// slotEntry is the persisted shape of a cart entry:
// {"product": {"id", "name", "description", "price", "imageUrl"}, "quantity": n}
type slotEntry struct {
	Product  slotProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

type slotProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

func encodeCart(cart domain.Cart) ([]byte, error) {
	entries := make([]slotEntry, 0, len(cart.Entries))
	for _, e := range cart.Entries {
		entries = append(entries, slotEntry{
			Product: slotProduct{
				ID:          e.Product.ID,
				Name:        e.Product.Name,
				Description: e.Product.Description,
				Price:       e.Product.Price,
				ImageURL:    e.Product.ImageURL,
			},
			Quantity: e.Quantity,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// decodeCart rejects payloads that could not have been produced by a cart:
// blank or duplicate ids, non-positive quantities and negative prices.
func decodeCart(data []byte) (domain.Cart, error) {
	var entries []slotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: json.Unmarshal: %w", port.ErrCorruptSlot, err)
	}

	var cart domain.Cart
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if e.Product.ID == "" {
			return domain.Cart{}, fmt.Errorf("%w: entry[%d] has empty product id", port.ErrCorruptSlot, i)
		}
		if _, ok := seen[e.Product.ID]; ok {
			return domain.Cart{}, fmt.Errorf("%w: product[%s] is duplicated", port.ErrCorruptSlot, e.Product.ID)
		}
		if e.Quantity < 1 {
			return domain.Cart{}, fmt.Errorf("%w: product[%s] quantity[%d] is not positive", port.ErrCorruptSlot, e.Product.ID, e.Quantity)
		}
		if e.Product.Price.IsNegative() {
			return domain.Cart{}, fmt.Errorf("%w: product[%s] price is negative", port.ErrCorruptSlot, e.Product.ID)
		}
		seen[e.Product.ID] = struct{}{}

		cart.Entries = append(cart.Entries, domain.CartEntry{
			Product: domain.Product{
				ID:          e.Product.ID,
				Name:        e.Product.Name,
				Description: e.Product.Description,
				Price:       e.Product.Price,
				ImageURL:    e.Product.ImageURL,
			},
			Quantity: e.Quantity,
		})
	}

	return cart, nil
}
