package handlers

import (
	"net/http"
	"strconv"

	"github.com/ysh038/cloud-storage/services"
	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

type CreateFolderRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	ParentFolderID uint   `json:"parent_folder_id"`
}

type UpdateFolderRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	ParentFolderID *uint   `json:"parent_folder_id"`
}

func ListFolders(c *gin.Context) {
	userID := c.GetUint("user_id")
	currentIDStr := c.DefaultQuery("current_folder_id", "0")
	currentID, err := strconv.ParseUint(currentIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	out, err := getServices().Folder.ListFolders(c.Request.Context(), userID, uint(currentID))
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func CreateFolder(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, err := getServices().Folder.CreateFolder(c.Request.Context(), userID, req.Name, req.ParentFolderID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, folder)
}

func UpdateFolder(c *gin.Context) {
	userID := c.GetUint("user_id")
	folderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	var req UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	err = getServices().Folder.UpdateFolder(c.Request.Context(), userID, uint(folderID), services.FolderPatch{
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "folder updated", nil)
}

func DeleteFolder(c *gin.Context) {
	userID := c.GetUint("user_id")
	folderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	err = getServices().Folder.DeleteFolder(c.Request.Context(), userID, uint(folderID))
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "folder deleted", nil)
}
