package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPath(t *testing.T) {
	tests := map[string]string{
		"/":                     "/",
		"/cart":                 "/cart",
		"/cart/items/42":        "/cart/items",
		"/orders/VISA-1/cancel": "/orders/:id/cancel",
		"/orders/stats":         "/orders/stats",
		"/products/abc":         "/products/:id",
		"/products/refresh":     "/products/refresh",
		"/settings/theme":       "/settings/theme",
	}
	for in, want := range tests {
		assert.Equal(t, want, canonicalPath(in), in)
	}
}

func TestInstrumentHandlerRecordsStatus(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	RecordCheckout("visa", "success")
	RecordAPIRetry("products/getAllProducts")

	out := httptest.NewRecorder()
	Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := out.Body.String()
	assert.True(t, strings.Contains(body, `playbox_http_requests_total{method="GET",path="/ping",status="418"} 1`))
	assert.Contains(t, body, `playbox_shop_checkouts_total{method="visa",result="success"} 1`)
	assert.Contains(t, body, `playbox_api_retries_total{route="products/getAllProducts"} 1`)
}

func TestRecordCheckoutFoldsUnknownMethods(t *testing.T) {
	RecordCheckout("bitcoin", "payment_failed")
	RecordCheckout("", "empty")

	out := httptest.NewRecorder()
	Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := out.Body.String()
	assert.Contains(t, body, `playbox_shop_checkouts_total{method="unknown",result="payment_failed"} 1`)
	assert.Contains(t, body, `playbox_shop_checkouts_total{method="unknown",result="empty"} 1`)
	assert.NotContains(t, body, `method="bitcoin"`)
}
