package repository_test

import (
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalCartRepositories(t *testing.T) {
	tests := []struct {
		name    string
		newRepo func(t *testing.T) port.CartRepository
	}{
		{
			name: "in memory",
			newRepo: func(t *testing.T) port.CartRepository {
				return repository.NewInMemoryCart()
			},
		},
		{
			name: "file",
			newRepo: func(t *testing.T) port.CartRepository {
				repo, err := repository.NewFileCart(filepath.Join(t.TempDir(), "cart.json"))
				require.NoError(t, err)
				return repo
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+": absent slot is not found", func(t *testing.T) {
			_, err := tt.newRepo(t).Load(t.Context())
			require.ErrorIs(t, err, port.ErrSlotNotFound)
		})

		t.Run(tt.name+": round trip keeps entries and quantities", func(t *testing.T) {
			repo := tt.newRepo(t)
			cart := domain.Cart{Entries: []domain.CartEntry{
				{Product: domain.Product{ID: "1", Price: decimal.RequireFromString("25.99")}, Quantity: 2},
				{Product: domain.Product{ID: "3", Price: decimal.RequireFromString("32.50")}, Quantity: 1},
			}}

			require.NoError(t, repo.Save(t.Context(), cart))

			got, err := repo.Load(t.Context())
			require.NoError(t, err)

			assertCart(t, cart, got)
		})

		t.Run(tt.name+": random cart round trip", func(t *testing.T) {
			repo := tt.newRepo(t)
			cart := randomCart(5)

			require.NoError(t, repo.Save(t.Context(), cart))

			got, err := repo.Load(t.Context())
			require.NoError(t, err)

			assertCart(t, cart, got)
		})
	}
}

func TestFileCartCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	repo, err := repository.NewFileCart(path)
	require.NoError(t, err)

	_, err = repo.Load(t.Context())
	require.ErrorIs(t, err, port.ErrCorruptSlot)
}

func TestFileCartSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	repo, err := repository.NewFileCart(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(t.Context(), randomCart(2)))
	require.NoError(t, repo.Save(t.Context(), randomCart(1)))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "cart.json", files[0].Name())
}

func TestFileCartSaveIntoMissingDirectory(t *testing.T) {
	repo, err := repository.NewFileCart(filepath.Join(t.TempDir(), "missing", "cart.json"))
	require.NoError(t, err)

	assert.Error(t, repo.Save(t.Context(), randomCart(1)))
}

func TestNewFileCartEmptyPath(t *testing.T) {
	_, err := repository.NewFileCart("")
	assert.EqualError(t, err, "path is empty")
}

func TestInMemoryCartFromCorruptPayload(t *testing.T) {
	repo := repository.NewInMemoryCartFrom([]byte(`[{"product":{"id":"1"},"quantity":"two"}]`))

	_, err := repo.Load(t.Context())
	require.ErrorIs(t, err, port.ErrCorruptSlot)
}
