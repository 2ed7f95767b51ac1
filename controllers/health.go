package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Salonease API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
