package customers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWalletURL = "https://wallet.example.com/add"

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn), Options{WalletURL: testWalletURL, QRSize: 64})
	require.NoError(t, err)
	return svc, conn
}

func createCustomer(t *testing.T, conn *gorm.DB, secret string, name *string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Customer{QRCodeSecret: secret, CustomerName: name}).Error)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	name := "Анна"
	createCustomer(t, conn, "AbC123xy", &name)
	createCustomer(t, conn, "Zz9Zz9Zz", nil)

	got, err := svc.Lookup(ctx, "AbC123xy")
	require.NoError(t, err)
	assert.Equal(t, "Анна", got.GreetingName())

	anon, err := svc.Lookup(ctx, "Zz9Zz9Zz")
	require.NoError(t, err)
	assert.Equal(t, GuestName, anon.GreetingName())

	_, err = svc.Lookup(ctx, "missing1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Lookup(ctx, "favicon.ico")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	createCustomer(t, conn, "AbC123xy", nil)

	updated, err := svc.Register(ctx, "AbC123xy", "  Мария  ")
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := svc.Lookup(ctx, "AbC123xy")
	require.NoError(t, err)
	assert.Equal(t, "Мария", got.Name)

	updated, err = svc.Register(ctx, "AbC123xy", "   ")
	require.NoError(t, err)
	assert.False(t, updated)

	got, err = svc.Lookup(ctx, "AbC123xy")
	require.NoError(t, err)
	assert.Equal(t, "Мария", got.Name, "blank names must not overwrite")

	updated, err = svc.Register(ctx, "unknown1", "Пётр")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestSeedTopsUpToTarget(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	createCustomer(t, conn, "AbC123xy", nil)

	created, err := svc.Seed(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 24, created)

	var secrets []string
	require.NoError(t, conn.Model(&models.Customer{}).Pluck("qr_code_secret", &secrets).Error)
	require.Len(t, secrets, 25)
	for _, s := range secrets {
		assert.Len(t, s, security.SecretCodeLength)
		assert.True(t, security.IsSecretCode(s))
	}

	created, err = svc.Seed(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, created)

	_, err = svc.Seed(ctx, 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestFirstCode(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)

	_, err := svc.FirstCode(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	createCustomer(t, conn, "first111", nil)
	createCustomer(t, conn, "second22", nil)

	code, err := svc.FirstCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first111", code)
}

func TestExportQRCodes(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	createCustomer(t, conn, "AbC123xy", nil)
	createCustomer(t, conn, "Zz9Zz9Zz", nil)

	dir := filepath.Join(t.TempDir(), "qrcodes_for_print")
	paths, err := svc.ExportQRCodes(ctx, "http://auranachocolate.com/", dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "aurana_qr_AbC123xy.png"), paths[0])

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}))
	}

	_, err = svc.ExportQRCodes(ctx, "", dir)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestWalletQR(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, "https://wallet.example.com/add?id=AbC123xy", svc.WalletLink("AbC123xy"))

	dataURL, err := svc.WalletQR("AbC123xy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dataURL), "data:image/png;base64,"))
}

func TestNewServiceValidatesOptions(t *testing.T) {
	conn := openTestDB(t)
	_, err := NewService(NewRepository(conn), Options{})
	assert.Error(t, err)
	_, err = NewService(nil, Options{WalletURL: testWalletURL})
	assert.Error(t, err)
}
