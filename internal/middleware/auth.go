package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
)

// ContextKeyClaims is the Gin context key for token claims.
const ContextKeyClaims = "claims"

// BearerToken extracts the token from the Authorization header, falling
// back to the ?token query param for WebSocket upgrades, which cannot
// send headers from the browser.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}

// RequireTokenPresence checks only that a bearer token is present.
// The token is not validated: read-only contest endpoints accept any
// presented token by contract.
func RequireTokenPresence() gin.HandlerFunc {
	return func(c *gin.Context) {
		if BearerToken(c) == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// RequireAuth validates the token and stores its claims in the context.
// A missing token and an unverifiable token are distinct failures: the
// client's timed test runner needs to know whether to re-login.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin admits only tokens that verify and carry the admin role.
// An unverifiable token is treated as merely "not admin", not as a
// distinct authentication failure.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil || claims.Role != model.RoleAdmin {
			response.AbortError(c, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the token claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
