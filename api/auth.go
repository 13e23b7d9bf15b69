package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// withAuth resolves the bearer credential to an authenticated principal and
// passes the principal's user id to the handler. Failure details stay in the
// server log; the caller only sees "unauthorized".
func (a *api) withAuth(next func(w http.ResponseWriter, r *http.Request, userId string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.conf.JwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			log.Info("bearer auth failed", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, claims.Subject)
	}
}

// withServiceKey checks the static service key when one is configured.
func (a *api) withServiceKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.conf.ServiceKey != "" && r.Header.Get("X-Service-Key") != a.conf.ServiceKey {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
