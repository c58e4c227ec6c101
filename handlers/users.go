package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"playbox/api"
	"playbox/errs"
	"playbox/models"
	"playbox/shop"
	"playbox/validators"
)

// AccountHandler shows the session user on GET and forwards profile edits on POST.
func AccountHandler(svc *shop.Service, client *api.Client, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			u := svc.User()
			if u == nil {
				writeError(w, log, shop.ErrLoginRequired)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"email": u.Email, "isLoggedIn": u.IsLoggedIn})
		case http.MethodPost:
			var upd models.ProfileUpdate
			if err := decode(r, &upd); err != nil {
				writeError(w, log, err)
				return
			}
			if err := validateProfile(&upd); err != nil {
				writeError(w, log, err)
				return
			}
			reply, err := client.UpdateUser(r.Context(), upd)
			if err != nil {
				writeError(w, log, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": reply.Message})
		default:
			writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func validateProfile(upd *models.ProfileUpdate) error {
	if upd.UserName == "" && upd.Email == "" && upd.PhoneNumber == "" {
		return errs.New("handlers", errs.KindValidation, "nothing to update")
	}
	if upd.UserName != "" {
		if err := validators.ValidateString("UserName", upd.UserName, 1, 50); err != nil {
			return err
		}
	}
	if upd.Email != "" {
		if err := validators.ValidateEmail(upd.Email); err != nil {
			return err
		}
	}
	if upd.PhoneNumber != "" {
		return validators.ValidatePhone(upd.PhoneNumber)
	}
	return nil
}
