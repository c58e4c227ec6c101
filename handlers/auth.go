package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"playbox/api"
	"playbox/models"
	"playbox/shop"
	"playbox/validators"
)

// TokenTTL is the lifetime of a session token.
const TokenTTL = 24 * time.Hour

const userCreated = "User was created"

func SignUpHandler(client *api.Client, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignUpRequest
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		if err := validators.ValidateSignUp(&req); err != nil {
			writeError(w, log, err)
			return
		}
		reply, err := client.CreateUser(r.Context(), req)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if reply.Message != userCreated {
			log.WithField("reply", reply.Message).Warn("Unexpected sign-up reply")
			writeMessage(w, http.StatusBadGateway, "Failed to create account. Please try again.")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully!"})
	}
}

// LoginHandler authenticates against the remote API, opens the local session
// and returns a bearer token for the protected routes.
func LoginHandler(svc *shop.Service, client *api.Client, jwtKey []byte, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := decode(r, &creds); err != nil {
			writeError(w, log, err)
			return
		}
		if err := validators.ValidateCredentials(&creds); err != nil {
			writeError(w, log, err)
			return
		}
		if _, err := client.Login(r.Context(), creds); err != nil {
			log.WithError(err).WithField("email", creds.Email).Warn("Login failed")
			status := statusFor(err)
			writeJSON(w, status, errorBody{Error: "Login failed. Please try again.", Details: err.Error()})
			return
		}
		user, err := svc.Login(r.Context(), creds)
		if err != nil {
			writeError(w, log, err)
			return
		}
		token, err := IssueToken(jwtKey, user.Email, TokenTTL)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  map[string]interface{}{"email": user.Email, "isLoggedIn": user.IsLoggedIn},
		})
	}
}

// LogoutHandler closes the local session. The remote logout is best effort.
func LogoutHandler(svc *shop.Service, client *api.Client, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := client.Logout(r.Context()); err != nil {
			log.WithError(err).Warn("Remote logout failed")
		}
		if err := svc.Logout(r.Context()); err != nil {
			writeError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
