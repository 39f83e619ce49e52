package port

import (
	"context"
	"errors"
	"github.com/nikolayk812/storefront-demo/internal/domain"
)

var (
	ErrSlotNotFound = errors.New("cart slot not found")
	ErrCorruptSlot  = errors.New("cart slot is corrupt")
)

// CartRepository stores the whole cart in a single named slot.
// Save fully replaces the previous contents.
type CartRepository interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
