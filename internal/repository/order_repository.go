package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/db"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"golang.org/x/text/currency"
	"math"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// SaveOrder writes the order header and all of its lines atomically.
func (r *orderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("order ID is empty")
	}
	if len(order.Entries) == 0 {
		return fmt.Errorf("order has no entries")
	}
	if len(order.Entries) > math.MaxInt32 {
		return fmt.Errorf("order has too many entries")
	}
	for _, e := range order.Entries {
		if e.Quantity < 1 || e.Quantity > math.MaxInt32 {
			return fmt.Errorf("quantity[%d] of product[%s] is out of range", e.Quantity, e.Product.ID)
		}
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		err := q.InsertOrder(ctx, db.InsertOrderParams{
			ID:            order.ID,
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
			SubmittedAt:   order.SubmittedAt,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for i, e := range order.Entries {
			err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
				OrderID:     order.ID,
				Position:    int32(i),
				ProductID:   e.Product.ID,
				Name:        e.Product.Name,
				Description: e.Product.Description,
				PriceAmount: e.Product.Price,
				ImageUrl:    e.Product.ImageURL,
				Quantity:    int32(e.Quantity),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.InsertOrderItem[%s]: %w", e.Product.ID, err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	if id == uuid.Nil {
		return domain.Order{}, fmt.Errorf("order ID is empty")
	}

	row, err := r.q.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, port.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	itemRows, err := r.q.GetOrderItems(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	return mapOrderToDomain(row, itemRows)
}

func mapOrderToDomain(row db.Order, itemRows []db.GetOrderItemsRow) (domain.Order, error) {
	parsedCurrency, err := currency.ParseISO(row.TotalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.TotalCurrency, err)
	}

	entries := make([]domain.CartEntry, 0, len(itemRows))
	for _, item := range itemRows {
		entries = append(entries, domain.CartEntry{
			Product: domain.Product{
				ID:          item.ProductID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.PriceAmount,
				ImageURL:    item.ImageUrl,
			},
			Quantity: int(item.Quantity),
		})
	}

	return domain.Order{
		ID:          row.ID,
		Entries:     entries,
		Total:       domain.Money{Amount: row.TotalAmount, Currency: parsedCurrency},
		SubmittedAt: row.SubmittedAt,
	}, nil
}
