package response

import "github.com/gin-gonic/gin"

// Body is the error envelope every failed request returns. Success
// responses carry their payload directly, matching the contest client.
type Body struct {
	Message string `json:"message"`
}

// JSON sends a successful response with the given payload.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error sends an error response with a message naming what went wrong.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Message: message})
}

// AbortError aborts the middleware chain and sends an error response.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Body{Message: message})
}
