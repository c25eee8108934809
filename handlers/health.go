package handlers

import (
	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "cloud-storage",
	})
}
