package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers HEAD requests from uptime checks
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs after the session middleware accepted the cookie
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID":  c.GetString("userID"),
		"isAdmin": c.GetBool("isAdmin"),
	})
}
