package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"playbox/api"
	"playbox/metrics"
	"playbox/shop"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Shop    *shop.Service
	API     *api.Client
	JWTKey  []byte
	Limiter *RateLimiter
	Log     logrus.FieldLogger
}

// NewRouter registers every storefront route.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	auth := Auth(d.JWTKey, d.Shop)
	log := d.Log

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/products", ProductsHandler(d.Shop)).Methods(http.MethodGet)
	r.HandleFunc("/products", CreateProductHandler(d.API, log)).Methods(http.MethodPost)
	r.HandleFunc("/products/refresh", RefreshProductsHandler(d.Shop, log)).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", ProductHandler(d.Shop, log)).Methods(http.MethodGet)
	r.HandleFunc("/categories", CategoriesHandler(d.Shop)).Methods(http.MethodGet)

	r.HandleFunc("/signup", SignUpHandler(d.API, log)).Methods(http.MethodPost)
	r.HandleFunc("/login", LoginHandler(d.Shop, d.API, d.JWTKey, log)).Methods(http.MethodPost)
	r.HandleFunc("/logout", auth(LogoutHandler(d.Shop, d.API, log))).Methods(http.MethodPost)
	r.HandleFunc("/account", auth(AccountHandler(d.Shop, d.API, log))).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/cart", CartHandler(d.Shop)).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", auth(AddItemHandler(d.Shop, log))).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", auth(UpdateItemHandler(d.Shop, log))).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{id}", auth(RemoveItemHandler(d.Shop, log))).Methods(http.MethodDelete)
	r.HandleFunc("/checkout", auth(CheckoutHandler(d.Shop, log))).Methods(http.MethodPost)

	r.HandleFunc("/orders", auth(ListOrdersHandler(d.Shop))).Methods(http.MethodGet)
	r.HandleFunc("/orders/stats", auth(OrderStatsHandler(d.Shop))).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/cancel", auth(CancelOrderHandler(d.Shop, log))).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/deliver", auth(DeliverOrderHandler(d.Shop, log))).Methods(http.MethodPost)
	r.HandleFunc("/payments", auth(PaymentsHandler(d.Shop))).Methods(http.MethodGet)

	r.HandleFunc("/settings/theme", ThemeHandler(d.Shop, log)).Methods(http.MethodGet, http.MethodPost)

	r.Use(mux.MiddlewareFunc(RequestLogger(log)))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}
	return r
}
