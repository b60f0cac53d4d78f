package middleware

import (
	"github.com/gin-gonic/gin"
)

// Logging returns the request logging middleware for HTTP requests.
func Logging() gin.HandlerFunc {
	return gin.Logger()
}
