package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"election_billing/internal/session" // Server-side session registry
	"election_billing/internal/utils"   // Session token helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie carries the session token for the browser views
const SessionCookie = "session_token"

// ContextUserID is the gin context key holding the authenticated user ID
const ContextUserID = "userID"

// ContextSessionID is the gin context key holding the session ID
const ContextSessionID = "sessionID"

// extractToken pulls the session token from the Authorization header or the
// session cookie.
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// resolveSession validates the token signature and requires the named
// session to still exist server-side. Returns the user and session IDs.
func resolveSession(c *gin.Context, secret string, store session.Store) (uint, string, bool) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return 0, "", false
	}
	claims, err := utils.ParseSessionToken(tokenStr, secret)
	if err != nil {
		return 0, "", false
	}
	// A valid signature is not enough: logout or idle timeout kills the
	// server-side record and with it the token.
	userID, ok, err := store.Get(c.Request.Context(), claims.SessionID)
	if err != nil || !ok || userID != claims.UserID {
		return 0, "", false
	}
	return userID, claims.SessionID, true
}

// RequireLogin guards API routes; unauthenticated requests get 401 JSON
func RequireLogin(secret string, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := resolveSession(c, secret, store)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "กรุณาเข้าสู่ระบบ",
			})
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// RequireLoginView guards browser views; unauthenticated requests are
// redirected to the login page instead of getting a JSON error.
func RequireLoginView(secret string, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := resolveSession(c, secret, store)
		if !ok {
			c.Redirect(http.StatusFound, "/?page=login")
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}
