package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"playbox/api"
	"playbox/errs"
	"playbox/shop"
)

type errorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps an error from the storefront packages onto an HTTP status.
func statusFor(err error) int {
	var apiErr *api.Error
	switch {
	case errors.Is(err, shop.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, shop.ErrLoginRequired):
		return http.StatusUnauthorized
	case errors.Is(err, shop.ErrOrderNotFound), errors.Is(err, shop.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, shop.ErrEmptyCart), errors.Is(err, shop.ErrOrderNotCancellable), errors.Is(err, shop.ErrOrderNotPending):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != http.StatusNotFound {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrNetwork), errors.Is(err, errs.ErrParse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		body.Error = apiErr.Message
		body.Details = apiErr.Details
	}
	entry := log.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	writeJSON(w, status, body)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Validation("handlers", "invalid JSON body: %v", err)
	}
	return nil
}
