package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ysh038/cloud-storage/services"
	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

type UpdateFileRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	ParentFolderID *uint   `json:"parent_folder_id"`
}

func ListFiles(c *gin.Context) {
	userID := c.GetUint("user_id")
	parentIDStr := c.DefaultQuery("parent_folder_id", "0")
	parentID, err := strconv.ParseUint(parentIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	files, err := getServices().File.ListFiles(c.Request.Context(), userID, uint(parentID))
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, files)
}

func UploadFile(c *gin.Context) {
	userID := c.GetUint("user_id")

	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	parentIDStr := c.DefaultPostForm("parent_folder_id", "0")
	parentID, err := strconv.ParseUint(parentIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	src, err := header.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer src.Close()

	file, err := getServices().File.UploadFile(
		c.Request.Context(),
		userID,
		header.Filename,
		src,
		header.Size,
		uint(parentID),
	)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "file uploaded", file)
}

func DownloadFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	info, err := getServices().File.GetDownloadInfo(c.Request.Context(), userID, uint(fileID))
	if respondServiceError(c, err) {
		return
	}

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, info.File.Name))
	c.Header("X-Filename", info.File.Name)
	http.ServeFile(c.Writer, c.Request, info.AbsPath)
}

func UpdateFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	var req UpdateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	err = getServices().File.UpdateFile(c.Request.Context(), userID, uint(fileID), services.FilePatch{
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "file updated", nil)
}

func DeleteFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	err = getServices().File.SoftDeleteFile(c.Request.Context(), userID, uint(fileID))
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "file moved to trash", nil)
}
