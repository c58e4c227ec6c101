package storage

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/sirupsen/logrus"

	"playbox/errs"
	"playbox/models"
)

// Persistence wraps a Store with typed, guarded accessors. Loads never fail:
// storage errors and malformed JSON are logged and yield empty values.
type Persistence struct {
	store Store
	log   logrus.FieldLogger
}

func NewPersistence(store Store, log logrus.FieldLogger) *Persistence {
	return &Persistence{store: store, log: log}
}

// Apply forwards an atomic batch to the store.
func (p *Persistence) Apply(ctx context.Context, muts ...Mutation) error {
	return p.store.Apply(ctx, muts)
}

// GetData returns the raw value for key.
func (p *Persistence) GetData(ctx context.Context, key string) (string, bool) {
	v, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Error("Error getting data from storage")
		return "", false
	}
	return v, ok
}

func (p *Persistence) StoreData(ctx context.Context, key, value string) error {
	if err := p.store.Set(ctx, key, value); err != nil {
		p.log.WithError(err).WithField("key", key).Error("Error saving data to storage")
		return err
	}
	return nil
}

func (p *Persistence) RemoveData(ctx context.Context, key string) error {
	if err := p.store.Remove(ctx, key); err != nil {
		p.log.WithError(err).WithField("key", key).Error("Error removing data from storage")
		return err
	}
	return nil
}

// GetDataJSON decodes key into out and reports whether a valid value was found.
func (p *Persistence) GetDataJSON(ctx context.Context, key string, out interface{}) bool {
	raw, ok := p.GetData(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Error getting JSON data from storage")
		return false
	}
	return true
}

func (p *Persistence) StoreDataJSON(ctx context.Context, key string, v interface{}) error {
	m, err := jsonMutation(key, v)
	if err != nil {
		return err
	}
	return p.StoreData(ctx, key, *m.Value)
}

// StoreList writes v under key after checking that v is a slice or array.
func (p *Persistence) StoreList(ctx context.Context, key string, v interface{}) error {
	m, err := ListMutation(key, v)
	if err != nil {
		p.log.WithField("key", key).Error("Invalid list data type")
		return err
	}
	return p.StoreData(ctx, key, *m.Value)
}

func jsonMutation(key string, v interface{}) (Mutation, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Mutation{}, errs.Wrap("storage.encode "+key, errs.KindParse, err)
	}
	return SetMutation(key, string(data)), nil
}

// ListMutation encodes v for key, rejecting anything that is not a slice or array.
// A nil slice is stored as an empty list.
func ListMutation(key string, v interface{}) (Mutation, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return Mutation{}, errs.Validation("storage.list "+key, "invalid %s data type: expected a list", key)
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return SetMutation(key, "[]"), nil
	}
	return jsonMutation(key, v)
}

// User -------------------------------------------------------------------

// LoadUser returns the persisted session user. A user found only under the
// bootstrap key is moved to the primary key.
func (p *Persistence) LoadUser(ctx context.Context) *models.User {
	var u models.User
	if p.GetDataJSON(ctx, UserKey, &u) {
		return &u
	}
	if !p.GetDataJSON(ctx, BootstrapUserKey, &u) {
		return nil
	}
	m, err := jsonMutation(UserKey, u)
	if err == nil {
		err = p.Apply(ctx, m, RemoveMutation(BootstrapUserKey))
	}
	if err != nil {
		p.log.WithError(err).Warn("Could not migrate bootstrap user")
	}
	return &u
}

func (p *Persistence) SaveUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return errs.New("storage.SaveUser", errs.KindValidation, "invalid user data")
	}
	return p.StoreDataJSON(ctx, UserKey, u)
}

func (p *Persistence) RemoveUser(ctx context.Context) error {
	return p.RemoveData(ctx, UserKey)
}

// Orders -----------------------------------------------------------------

// LoadOrders returns the stored orders. Corrupt data is removed from the store.
func (p *Persistence) LoadOrders(ctx context.Context) []models.Order {
	raw, ok := p.GetData(ctx, OrdersKey)
	if !ok || raw == "" {
		return []models.Order{}
	}
	var generic interface{}
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		p.log.WithError(err).WithField("key", OrdersKey).Error("Invalid orders JSON, clearing it")
		_ = p.RemoveData(ctx, OrdersKey)
		return []models.Order{}
	}
	if _, isList := generic.([]interface{}); !isList {
		p.log.WithField("key", OrdersKey).Error("Parsed orders is not an array")
		return []models.Order{}
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		p.log.WithError(err).WithField("key", OrdersKey).Error("Invalid orders JSON, clearing it")
		_ = p.RemoveData(ctx, OrdersKey)
		return []models.Order{}
	}
	return orders
}

func (p *Persistence) SaveOrders(ctx context.Context, orders []models.Order) error {
	return p.StoreList(ctx, OrdersKey, orders)
}

func (p *Persistence) AddOrder(ctx context.Context, order models.Order) error {
	if order.ID == "" {
		return errs.New("storage.AddOrder", errs.KindValidation, "invalid order data")
	}
	return p.SaveOrders(ctx, append(p.LoadOrders(ctx), order))
}

func (p *Persistence) RemoveOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return errs.New("storage.RemoveOrder", errs.KindValidation, "invalid order ID")
	}
	current := p.LoadOrders(ctx)
	kept := current[:0]
	for _, o := range current {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	return p.SaveOrders(ctx, kept)
}

func OrdersMutation(orders []models.Order) (Mutation, error) {
	return ListMutation(OrdersKey, orders)
}

// Products ---------------------------------------------------------------

func (p *Persistence) LoadProducts(ctx context.Context) []models.Product {
	var products []models.Product
	if !p.GetDataJSON(ctx, ProductsKey, &products) || products == nil {
		return []models.Product{}
	}
	return products
}

func (p *Persistence) SaveProducts(ctx context.Context, products []models.Product) error {
	return p.StoreList(ctx, ProductsKey, products)
}

// Cart -------------------------------------------------------------------

func (p *Persistence) LoadCart(ctx context.Context) models.Cart {
	cart := models.Cart{}
	if !p.GetDataJSON(ctx, CartKey, &cart) || cart == nil {
		return models.Cart{}
	}
	return cart
}

func (p *Persistence) SaveCart(ctx context.Context, cart models.Cart) error {
	m, err := CartMutation(cart)
	if err != nil {
		return err
	}
	return p.Apply(ctx, m)
}

func (p *Persistence) RemoveCart(ctx context.Context) error {
	return p.RemoveData(ctx, CartKey)
}

func CartMutation(cart models.Cart) (Mutation, error) {
	if cart == nil {
		cart = models.Cart{}
	}
	return jsonMutation(CartKey, cart)
}

func RemoveCartMutation() Mutation {
	return RemoveMutation(CartKey)
}

// Theme ------------------------------------------------------------------

func (p *Persistence) LoadTheme(ctx context.Context) (string, bool) {
	return p.GetData(ctx, ThemeKey)
}

func (p *Persistence) SaveTheme(ctx context.Context, theme string) error {
	return p.StoreData(ctx, ThemeKey, theme)
}

// Payments ---------------------------------------------------------------

func (p *Persistence) LoadPayments(ctx context.Context) []models.PaymentRecord {
	var records []models.PaymentRecord
	if !p.GetDataJSON(ctx, PaymentsKey, &records) || records == nil {
		return []models.PaymentRecord{}
	}
	return records
}

func (p *Persistence) AppendPayment(ctx context.Context, rec models.PaymentRecord) error {
	return p.StoreList(ctx, PaymentsKey, append(p.LoadPayments(ctx), rec))
}
