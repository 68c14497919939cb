package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogium/blogium/utils"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "blogium_session"
	// ContextUserIDKey is the key used to store the authenticated user ID in the Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside the Gin context.
	ContextUsernameKey = "username"
)

// CurrentUser resolves the session cookie into a request identity when one
// is present. It never rejects a request; anonymous visitors pass through
// with no identity set.
func CurrentUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookie)
		if err != nil || token == "" {
			ctx.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			// Expired or tampered cookie, treat as anonymous
			ctx.Next()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// LoginRequired redirects anonymous visitors to the login page. It relies on
// CurrentUser having run earlier in the chain.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(ContextUserIDKey); !exists {
			ctx.Redirect(http.StatusSeeOther, "/auth/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user's ID, or 0 for anonymous visitors.
func UserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// Username returns the authenticated user's username, if any.
func Username(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextUsernameKey)
	if !exists {
		return "", false
	}
	name, ok := value.(string)
	return name, ok
}
