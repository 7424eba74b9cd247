package respond

import "github.com/gin-gonic/gin"

// JSON writes payload with the given status. Success bodies go through
// this helper so they stay as uniform as the error envelope.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}
