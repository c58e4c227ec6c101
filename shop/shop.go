// Package shop owns the storefront state of one device: session, cart,
// catalogue, orders and theme. Every mutation is persisted before the
// in-memory state changes.
package shop

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"playbox/errs"
	"playbox/models"
	"playbox/payment"
	"playbox/storage"
)

var (
	ErrLoginRequired       = errs.New("shop", errs.KindState, "Please login to add items to your cart")
	ErrEmptyCart           = errs.New("shop", errs.KindState, "Your cart is empty")
	ErrPaymentFailed       = errs.New("shop", errs.KindState, "Failed to process payment")
	ErrOrderNotFound       = errs.New("shop", errs.KindState, "order not found")
	ErrOrderNotCancellable = errs.New("shop", errs.KindState, "only pending orders can be cancelled")
	ErrOrderNotPending     = errs.New("shop", errs.KindState, "order is not pending")
	ErrProductNotFound     = errs.New("shop", errs.KindState, "product not found")
)

// Catalog fetches the remote product list.
type Catalog interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// Service is the state container. All methods are safe for concurrent use;
// a single mutex serialises them, checkout included.
type Service struct {
	mu sync.Mutex

	store   *storage.Persistence
	catalog Catalog
	gateway payment.Gateway
	log     logrus.FieldLogger
	now     func() time.Time
	cost    int

	user     *models.User
	cart     models.Cart
	products []models.Product
	orders   []models.Order
	dark     bool
}

// New rehydrates a Service from store.
func New(ctx context.Context, store *storage.Persistence, catalog Catalog, gateway payment.Gateway, log logrus.FieldLogger) *Service {
	s := &Service{
		store:   store,
		catalog: catalog,
		gateway: gateway,
		log:     log,
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
	s.user = store.LoadUser(ctx)
	s.orders = store.LoadOrders(ctx)
	s.products = store.LoadProducts(ctx)
	s.cart = store.LoadCart(ctx)
	if theme, ok := store.LoadTheme(ctx); ok {
		s.dark = theme == ThemeDark
	}
	log.WithFields(logrus.Fields{
		"logged_in": s.user != nil,
		"orders":    len(s.orders),
		"products":  len(s.products),
		"cart":      len(s.cart),
	}).Info("Storefront state loaded")
	return s
}
