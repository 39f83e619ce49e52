package port

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}
