package handlers

import (
	"net/http"

	"github.com/ysh038/cloud-storage/services"
	"github.com/ysh038/cloud-storage/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	user, err := getServices().Auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), req.Email, req.Password)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, gin.H{
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
		"token_type":    out.TokenType,
		"user": gin.H{
			"id":    out.User.ID,
			"email": out.User.Email,
			"name":  out.User.Name,
		},
	})
}

func Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	access, err := getServices().Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, gin.H{"access_token": access, "token_type": "bearer"})
}

func GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := getServices().Auth.GetProfile(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"created_at": user.CreatedAt,
	})
}
