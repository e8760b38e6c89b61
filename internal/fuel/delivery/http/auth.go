package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/fuel-control/pkg/auth"
	"github.com/tair/fuel-control/pkg/logger"
)

type contextKey string

const (
	OperatorKey contextKey = "operator"
	RoleKey     contextKey = "role"
)

// RoleManager may archive, delete and recompute tanks.
const RoleManager = "manager"

// AuthMiddleware validates the bearer JWT and stores the operator in the
// request context
func AuthMiddleware(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(r.Context()).Msg("Missing authorization header")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Authorization header required",
				})
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(r.Context()).Msg("Invalid authorization header format")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid authorization header format",
				})
				return
			}

			claims, err := auth.ValidateToken(parts[1], secret)
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid token",
				})
				return
			}

			logger.Debug(r.Context()).
				Str("operator", claims.Operator()).
				Str("role", claims.Role).
				Msg("Operator authenticated")

			ctx := context.WithValue(r.Context(), OperatorKey, claims.Operator())
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// OperatorFromContext returns the authenticated operator, or "" when the
// request was not authenticated
func OperatorFromContext(ctx context.Context) string {
	operator, _ := ctx.Value(OperatorKey).(string)
	return operator
}

// ManagerMiddleware requires an authenticated operator with the manager role
func ManagerMiddleware(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return AuthMiddleware(secret)(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(RoleKey).(string)
			if !ok || role != RoleManager {
				logger.Warn(r.Context()).
					Str("operator", OperatorFromContext(r.Context())).
					Str("role", role).
					Msg("Manager role required")
				respondJSON(w, http.StatusForbidden, Response{
					Success: false,
					Error:   "Manager role required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
