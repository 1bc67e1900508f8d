package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getStatus reports that the service is up.
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "currency-converter"})
}
