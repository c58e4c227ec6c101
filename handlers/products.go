package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"playbox/api"
	"playbox/models"
	"playbox/shop"
)

// ProductsHandler lists the cached catalogue, narrowed by ?category= or ?q=.
func ProductsHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var products []models.Product
		switch {
		case q.Get("q") != "":
			products = svc.Search(q.Get("q"))
		case q.Get("category") != "":
			products = svc.ProductsByCategory(q.Get("category"))
		default:
			products = svc.Products()
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func ProductHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Product(mux.Vars(r)["id"])
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func RefreshProductsHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.RefreshProducts(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func CategoriesHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Categories())
	}
}

// CreateProductHandler forwards a new product to the remote API.
func CreateProductHandler(client *api.Client, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		if err := decode(r, &p); err != nil {
			writeError(w, log, err)
			return
		}
		reply, err := client.CreateProduct(r.Context(), &p)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": reply.Message})
	}
}
