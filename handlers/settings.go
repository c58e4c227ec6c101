package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"playbox/shop"
)

func ThemeHandler(svc *shop.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]string{"theme": svc.Theme()})
		case http.MethodPost:
			theme, err := svc.ToggleTheme(r.Context())
			if err != nil {
				writeError(w, log, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
		default:
			writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}
