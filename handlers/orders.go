package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"playbox/models"
	"playbox/shop"
)

func CheckoutHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PaymentRequest
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		order, err := svc.Checkout(r.Context(), req)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

// ListOrdersHandler filters with ?status=pending|delivered|cancelled, ?active=true
// or ?recent=N.
func ListOrdersHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var orders []models.Order
		switch {
		case q.Get("status") != "" && q.Get("status") != "all":
			orders = svc.OrdersByStatus(parseStatus(q.Get("status")))
		case q.Get("recent") != "":
			n, err := strconv.Atoi(q.Get("recent"))
			if err != nil || n < 0 {
				writeMessage(w, http.StatusBadRequest, "recent must be a non-negative integer")
				return
			}
			orders = svc.RecentOrders(n)
		case q.Get("active") == "true":
			orders = svc.ActiveOrders()
		default:
			orders = svc.Orders()
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func parseStatus(s string) models.OrderStatus {
	for _, st := range []models.OrderStatus{models.OrderPending, models.OrderDelivered, models.OrderCancelled} {
		if strings.EqualFold(string(st), s) {
			return st
		}
	}
	return models.OrderStatus(s)
}

func OrderStatsHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Stats())
	}
}

func CancelOrderHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.CancelOrder(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func DeliverOrderHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.MarkDelivered(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}
