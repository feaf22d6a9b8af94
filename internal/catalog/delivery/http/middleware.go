package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tradehub/b2b-marketplace/pkg/auth"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
)

type contextKey string

const (
	PartnerIDKey   contextKey = "partner_id"
	PartnerTypeKey contextKey = "partner_type"
)

// AuthMiddleware validates the bearer JWT and puts the partner identity
// on the request context
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), PartnerIDKey, claims.PartnerID)
		ctx = context.WithValue(ctx, PartnerTypeKey, claims.PartnerType)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SupplierMiddleware restricts an endpoint to supplier or admin tokens
func SupplierMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		partnerType, ok := r.Context().Value(PartnerTypeKey).(string)
		if !ok || (partnerType != auth.PartnerTypeSupplier && partnerType != auth.PartnerTypeAdmin) {
			respondError(w, http.StatusForbidden, "Supplier access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
