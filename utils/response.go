// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondFailed writes the {state:"failed"} envelope used by every route.
func RespondFailed(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"state": "failed",
		"error": message,
	})
}

// RespondSuccess writes the bare {state:"success"} envelope. Extra payload
// fields (e.g. the reminders list) are merged in.
func RespondSuccess(c *gin.Context, extra gin.H) {
	body := gin.H{"state": "success"}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(200, body)
}
