package user

import (
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserLogout only drops the cookie. Tokens are stateless and stay valid
// until they expire
func UserLogout(c *gin.Context, d *internal.Deps) {
	session.Clear(c, d.SecureCookies)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}
