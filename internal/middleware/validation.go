package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates a JSON body; on failure the 400 response is already written
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters; on failure the 400 response is already written
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}
