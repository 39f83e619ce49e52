package repository_test

import (
	"context"
	"fmt"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_cart_slots.up.sql",
			"../migrations/02_orders.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		ImageURL:    gofakeit.URL(),
	}
}

func randomEntry() domain.CartEntry {
	return domain.CartEntry{
		Product:  randomProduct(),
		Quantity: gofakeit.IntRange(1, 9),
	}
}

func randomCart(n int) domain.Cart {
	var cart domain.Cart
	for range n {
		cart.Entries = append(cart.Entries, randomEntry())
	}
	return cart
}
