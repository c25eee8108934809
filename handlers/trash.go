package handlers

import (
	"net/http"
	"strconv"

	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

func ListTrash(c *gin.Context) {
	userID := c.GetUint("user_id")

	files, err := getServices().File.ListTrash(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, files)
}

func RestoreFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	err = getServices().File.RestoreFile(c.Request.Context(), userID, uint(fileID))
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "file restored", nil)
}

func PurgeFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	err = getServices().File.PurgeFile(c.Request.Context(), userID, uint(fileID))
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "file permanently deleted", nil)
}
