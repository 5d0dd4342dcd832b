package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActiveReturnsSeededCatalogInOrder(t *testing.T) {
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	products, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "truffle-classic", products[0].ID)
	assert.Equal(t, 1200, products[0].Price)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Position, products[i].Position)
	}
}

func TestListActiveSkipsInactiveAndOrdersTies(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, conn.Exec("DELETE FROM products").Error)
	require.NoError(t, conn.Create(&models.Product{ID: "b", Name: "B", Price: 10, Position: 1, IsActive: true}).Error)
	require.NoError(t, conn.Create(&models.Product{ID: "a", Name: "A", Price: 20, Position: 1, IsActive: true}).Error)
	require.NoError(t, conn.Create(&models.Product{ID: "z", Name: "Z", Price: 5, Position: 0, IsActive: true}).Error)
	require.NoError(t, conn.Exec("INSERT INTO products (id, name, price, position, active) VALUES ('off', 'Off', 1, 0, 0)").Error)

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	products, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"z", "a", "b"}, []string{products[0].ID, products[1].ID, products[2].ID})
}

type failingRepo struct{}

func (failingRepo) ListActive(context.Context) ([]models.Product, error) {
	return nil, errors.New("db down")
}

func TestListActiveWrapsRepositoryErrors(t *testing.T) {
	svc, err := NewService(failingRepo{})
	require.NoError(t, err)

	_, err = svc.ListActive(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	_, err = NewService(nil)
	assert.Error(t, err)
}
