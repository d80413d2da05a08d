package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/relief-directory/internal/application"
	"github.com/oksasatya/relief-directory/pkg/helpers"
	"github.com/oksasatya/relief-directory/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// SessionVerifier resolves a session token to the caller identity
type SessionVerifier interface {
	Verify(token string) (*application.Identity, error)
}

// SessionAuth reads the auth_token cookie, verifies it and stores the caller
// in the Gin context. Any failure aborts with a single 401 shape.
func SessionAuth(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Message)
			return
		}
		ident, err := v.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Message)
			return
		}
		c.Set(CtxUserIDKey, ident.UserID)
		c.Set(CtxUserEmailKey, ident.Email)
		c.Next()
	}
}

// Identity returns the caller stored by SessionAuth, nil when absent
func Identity(c *gin.Context) *application.Identity {
	uid := c.GetString(CtxUserIDKey)
	if uid == "" {
		return nil
	}
	return &application.Identity{UserID: uid, Email: c.GetString(CtxUserEmailKey)}
}
