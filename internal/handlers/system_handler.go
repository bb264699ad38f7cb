package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "YaKrash API v1.0",
		"status":  "running",
		"endpoints": gin.H{
			"auth":          "/api/auth",
			"users":         "/api/users",
			"appointments":  "/api/appointments",
			"notifications": "/api/notifications",
			"chats":         "/api/chats",
			"audit_logs":    "/api/audit-logs",
			"websocket":     "/ws",
		},
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Endpoint not found"})
}
