package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"io/fs"
	"os"
	"path/filepath"
)

// fileCartRepository keeps the slot in a single JSON file.
// Writes go through a temp file and rename so a crash never leaves half a cart.
type fileCartRepository struct {
	path string
}

func NewFileCart(path string) (port.CartRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	return &fileCartRepository{path: path}, nil
}

func (r *fileCartRepository) Load(_ context.Context) (domain.Cart, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Cart{}, port.ErrSlotNotFound
		}
		return domain.Cart{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	cart, err := decodeCart(data)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("decodeCart: %w", err)
	}

	return cart, nil
}

func (r *fileCartRepository) Save(_ context.Context, cart domain.Cart) (err error) {
	data, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	defer func() {
		if err != nil {
			if removeErr := os.Remove(tmp.Name()); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
				err = errors.Join(err, fmt.Errorf("os.Remove: %w", removeErr))
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
