// Package session moves signed session tokens in and out of the auth cookie
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const CookieName = "auth_token"

// Set stores the token in an HttpOnly, SameSite=Lax cookie that expires
// together with the token. secure should only be true when served over HTTPS
func Set(c *gin.Context, token string, expires time.Time, secure bool) {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", secure, true)
}

// Clear deletes the auth cookie
func Clear(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

// Token returns the raw token from the request, or "" if there is none
func Token(c *gin.Context) string {
	v, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return v
}
