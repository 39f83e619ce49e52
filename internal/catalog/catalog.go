package catalog

import (
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog is a fixed, read-only product list.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New builds a catalog in the given order. A later product with an
// already seen id is ignored.
func New(products ...domain.Product) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(products))}

	for _, p := range products {
		if _, ok := c.byID[p.ID]; ok {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c
}

func Default() *Catalog {
	return New(
		domain.Product{
			ID:          "1",
			Name:        "Product 1",
			Description: "Description for Product 1",
			Price:       decimal.RequireFromString("25.99"),
			ImageURL:    "https://media.istockphoto.com/id/517081132/photo/funny-little-girl-giving-thumbs-up.jpg",
		},
		domain.Product{
			ID:          "2",
			Name:        "Product 2",
			Description: "Description for Product 2",
			Price:       decimal.RequireFromString("19.99"),
			ImageURL:    "https://media.istockphoto.com/id/1212783534/photo/studio-portrait-of-a-young-girl-on-white-background.jpg",
		},
		domain.Product{
			ID:          "3",
			Name:        "Product 3",
			Description: "Description for Product 3",
			Price:       decimal.RequireFromString("32.50"),
			ImageURL:    "https://img.freepik.com/free-photo/little-young-caucasian-boy-nature-childhood_158595-2550.jpg",
		},
		domain.Product{
			ID:          "4",
			Name:        "Product 4",
			Description: "Description for Product 4",
			Price:       decimal.RequireFromString("15.00"),
			ImageURL:    "https://images.unsplash.com/photo-1627639679638-8485316a4b21",
		},
		domain.Product{
			ID:          "5",
			Name:        "Product 5",
			Description: "Another product example",
			Price:       decimal.RequireFromString("45.00"),
			ImageURL:    "https://www.shutterstock.com/image-photo/adorable-little-girl-playing-wheat-260nw-109410998.jpg",
		},
	)
}

// ListAll returns a fresh copy on every call.
func (c *Catalog) ListAll() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) FindByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}
