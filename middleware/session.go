package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "vb_session"
	sessionKey    = "session"
	sessionMaxAge = 365 * 24 * 60 * 60
)

// Session makes sure every request carries a browser session id. The id scopes
// history storage the way local storage is scoped to one browser.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" outside of it.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
