package handlers

import (
	"net/http"

	"playbox/shop"
)

// PaymentsHandler lists recorded card payments. Only the last four digits
// of each card are stored.
func PaymentsHandler(svc *shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Payments(r.Context()))
	}
}
