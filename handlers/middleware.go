package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"playbox/models"
	"playbox/shop"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext returns the claims stored by Auth, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*models.Claims)
	return c, ok
}

// IssueToken signs a session token for email.
func IssueToken(jwtKey []byte, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
}

// Auth accepts a bearer token only while it belongs to the current session user.
func Auth(jwtKey []byte, svc *shop.Service) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims := &models.Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return jwtKey, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			u := svc.User()
			if u == nil || !u.IsLoggedIn || !strings.EqualFold(u.Email, claims.Email) {
				writeMessage(w, http.StatusUnauthorized, "Session expired, please log in again")
				return
			}
			next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		}
	}
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	log      logrus.FieldLogger
}

func NewRateLimiter(rps, burst int, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		log:      log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) > 10000 {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !rl.limiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{"client": key, "path": r.URL.Path}).Warn("Rate limit exceeded")
			writeMessage(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (lw *loggingWriter) WriteHeader(code int) {
	lw.status = code
	lw.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lw, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   lw.status,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}
