package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"playbox/models"
	"playbox/shop"
)

func cartView(c models.Cart) models.CartView {
	return models.CartView{Items: c.Lines(), ItemCount: c.ItemCount(), Total: c.Total().StringFixed(2)}
}

func CartHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cartView(svc.Cart()))
	}
}

// AddItemHandler adds a catalogue product to the cart. The line image always
// comes from the catalogue entry and its selected colour.
func AddItemHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CartRequest
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		p, err := svc.Product(req.ProductID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if err := svc.AddToCart(r.Context(), p, req.Quantity, req.SelectedColor); err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, cartView(svc.Cart()))
	}
}

// UpdateItemHandler sets a line quantity or steps it with action increment/decrement.
func UpdateItemHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var req models.QuantityRequest
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		var err error
		switch req.Action {
		case "increment":
			err = svc.IncrementQuantity(r.Context(), id)
		case "decrement":
			err = svc.DecrementQuantity(r.Context(), id)
		case "", "set":
			err = svc.UpdateCartItemQuantity(r.Context(), id, req.Quantity)
		default:
			writeMessage(w, http.StatusBadRequest, "unknown action "+req.Action)
			return
		}
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, cartView(svc.Cart()))
	}
}

func RemoveItemHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveFromCart(r.Context(), mux.Vars(r)["id"]); err != nil {
			writeError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
