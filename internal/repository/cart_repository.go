package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/db"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	slot string
}

func NewCart(pool *pgxpool.Pool, slot string) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if slot == "" {
		return nil, fmt.Errorf("slot is empty")
	}

	return &cartRepository{
		q:    db.New(pool),
		slot: slot,
	}, nil
}

func (r *cartRepository) Load(ctx context.Context) (domain.Cart, error) {
	payload, err := r.q.GetCartSlot(ctx, r.slot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, port.ErrSlotNotFound
		}
		return domain.Cart{}, fmt.Errorf("q.GetCartSlot: %w", err)
	}

	cart, err := decodeCart(payload)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("decodeCart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	payload, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	err = r.q.UpsertCartSlot(ctx, db.UpsertCartSlotParams{
		Slot:    r.slot,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertCartSlot: %w", err)
	}

	return nil
}
