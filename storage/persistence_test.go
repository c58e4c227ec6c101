package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playbox/errs"
	"playbox/models"
)

type failingStore struct {
	*MemoryStore
	getErr error
	setErr error
}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newPersistence(t *testing.T) (*Persistence, *MemoryStore, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	mem := NewMemoryStore()
	return NewPersistence(mem, log), mem, hook
}

func TestLoadOrdersCorruptJSONIsClearedAndEmpty(t *testing.T) {
	ctx := context.Background()
	p, mem, hook := newPersistence(t)
	require.NoError(t, mem.Set(ctx, OrdersKey, `[{"id": "VISA-1",`))

	orders := p.LoadOrders(ctx)

	assert.Empty(t, orders)
	assert.NotNil(t, orders)
	_, ok, _ := mem.Get(ctx, OrdersKey)
	assert.False(t, ok, "corrupt orders entry should be removed")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLoadOrdersNonArrayIsEmptyButKept(t *testing.T) {
	ctx := context.Background()
	p, mem, _ := newPersistence(t)
	require.NoError(t, mem.Set(ctx, OrdersKey, `{"id":"x"}`))

	assert.Empty(t, p.LoadOrders(ctx))
	_, ok, _ := mem.Get(ctx, OrdersKey)
	assert.True(t, ok)
}

func TestOrdersRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPersistence(t)
	order := models.Order{
		ID:          "VISA-ABC",
		Date:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:      models.OrderPending,
		Items:       []models.CartLine{{ProductID: "1", Name: "PS5", Price: decimal.NewFromInt(100), Quantity: 2}},
		TotalAmount: decimal.NewFromInt(200),
	}

	require.NoError(t, p.AddOrder(ctx, order))
	require.NoError(t, p.AddOrder(ctx, models.Order{ID: "PP-2", Status: models.OrderPending}))
	got := p.LoadOrders(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "VISA-ABC", got[0].ID)
	assert.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(200)))

	require.NoError(t, p.RemoveOrder(ctx, "VISA-ABC"))
	got = p.LoadOrders(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "PP-2", got[0].ID)

	assert.True(t, errors.Is(p.AddOrder(ctx, models.Order{}), errs.ErrValidation))
	assert.True(t, errors.Is(p.RemoveOrder(ctx, ""), errs.ErrValidation))
}

func TestStoreListRejectsNonListBeforeWriting(t *testing.T) {
	ctx := context.Background()
	p, mem, _ := newPersistence(t)

	err := p.StoreList(ctx, ProductsKey, map[string]string{"a": "b"})
	assert.True(t, errors.Is(err, errs.ErrValidation))
	err = p.StoreList(ctx, OrdersKey, nil)
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, ok, _ := mem.Get(ctx, ProductsKey)
	assert.False(t, ok)
	_, ok, _ = mem.Get(ctx, OrdersKey)
	assert.False(t, ok)
}

func TestSaveNilOrdersStoresEmptyList(t *testing.T) {
	ctx := context.Background()
	p, mem, _ := newPersistence(t)

	require.NoError(t, p.SaveOrders(ctx, nil))
	v, _, _ := mem.Get(ctx, OrdersKey)
	assert.Equal(t, "[]", v)
}

func TestLoadProductsMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	p, mem, hook := newPersistence(t)
	require.NoError(t, mem.Set(ctx, ProductsKey, "not json"))

	assert.Empty(t, p.LoadProducts(ctx))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	_, ok, _ := mem.Get(ctx, ProductsKey)
	assert.True(t, ok, "only orders are cleared on corruption")
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPersistence(t)

	assert.Nil(t, p.LoadUser(ctx))
	require.NoError(t, p.SaveUser(ctx, &models.User{Email: "a@b.co", IsLoggedIn: true}))
	u := p.LoadUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "a@b.co", u.Email)

	require.NoError(t, p.RemoveUser(ctx))
	assert.Nil(t, p.LoadUser(ctx))
	assert.Error(t, p.SaveUser(ctx, nil))
}

func TestLoadUserMigratesBootstrapKey(t *testing.T) {
	ctx := context.Background()
	p, mem, _ := newPersistence(t)
	require.NoError(t, mem.Set(ctx, BootstrapUserKey, `{"email":"old@ps.com","isLoggedIn":true}`))

	u := p.LoadUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "old@ps.com", u.Email)

	_, ok, _ := mem.Get(ctx, BootstrapUserKey)
	assert.False(t, ok)
	_, ok, _ = mem.Get(ctx, UserKey)
	assert.True(t, ok)
}

func TestLoadDegradesOnStorageError(t *testing.T) {
	log, hook := test.NewNullLogger()
	p := NewPersistence(&failingStore{MemoryStore: NewMemoryStore(), getErr: errors.New("io")}, log)
	ctx := context.Background()

	assert.Nil(t, p.LoadUser(ctx))
	assert.Empty(t, p.LoadOrders(ctx))
	assert.Empty(t, p.LoadCart(ctx))
	_, ok := p.LoadTheme(ctx)
	assert.False(t, ok)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestSaveReturnsStorageError(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewPersistence(&failingStore{MemoryStore: NewMemoryStore(), setErr: errors.New("quota")}, log)

	assert.EqualError(t, p.SaveTheme(context.Background(), "dark"), "quota")
}

func TestCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPersistence(t)
	cart := models.Cart{"7": {ProductID: "7", Name: "Pad", Price: decimal.RequireFromString("59.99"), Quantity: 3}}

	require.NoError(t, p.SaveCart(ctx, cart))
	got := p.LoadCart(ctx)
	require.Contains(t, got, "7")
	assert.Equal(t, 3, got["7"].Quantity)

	require.NoError(t, p.RemoveCart(ctx))
	assert.Empty(t, p.LoadCart(ctx))
}

func TestPaymentsAppend(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPersistence(t)

	require.NoError(t, p.AppendPayment(ctx, models.PaymentRecord{ID: "1", TransactionID: "VISA-1", CardNumber: "4242"}))
	require.NoError(t, p.AppendPayment(ctx, models.PaymentRecord{ID: "2", TransactionID: "VISA-2", CardNumber: "1111"}))

	got := p.LoadPayments(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "VISA-2", got[1].TransactionID)
}
