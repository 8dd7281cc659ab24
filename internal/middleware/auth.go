package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleksL04/SmartKitBud/internal/session"
)

// SessionMiddleware authenticates requests from the session cookie, with
// an Authorization: Bearer fallback for clients that hold the token
// directly. The verified payload is attached to the gin context and the
// request context so per-request store clients can forward the upstream
// credential.
func SessionMiddleware(codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication token not found."})
			c.Abort()
			return
		}

		payload := codec.Verify(token)
		if payload == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session. Please log in again."})
			c.Abort()
			return
		}

		c.Set("userID", payload.UserID)
		c.Set("userEmail", payload.Email)
		c.Request = c.Request.WithContext(session.WithPayload(c.Request.Context(), payload))
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
