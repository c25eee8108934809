package handlers

import (
	"net/http"

	"github.com/ysh038/cloud-storage/services"
	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

var appServices *services.Container

func SetServices(container *services.Container) {
	appServices = container
}

func getServices() *services.Container {
	if appServices == nil {
		panic("services container is not initialized")
	}
	return appServices
}

func respondServiceError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*services.AppError); ok {
		utils.Error(c, appErr.HTTPCode, appErr.Message)
		return true
	}
	utils.Error(c, http.StatusInternalServerError, "internal error")
	return true
}
