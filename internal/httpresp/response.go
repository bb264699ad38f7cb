package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes {"success": true, key: data}.
func OK(c *gin.Context, key string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, key: data})
}

func Created(c *gin.Context, message, key string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, key: data})
}

// Message writes a success response with only a human readable message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
