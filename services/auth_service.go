package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/ysh038/cloud-storage/logger"
	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/repositories"
	"github.com/ysh038/cloud-storage/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginOutput struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, email string, password string) (LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, userID uint) (models.User, error)
}

type authService struct {
	users     repositories.UserRepository
	tokens    *utils.TokenManager
	allocator *PathAllocator
}

func NewAuthService(users repositories.UserRepository, tokens *utils.TokenManager, allocator *PathAllocator) AuthService {
	return &authService{users: users, tokens: tokens, allocator: allocator}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	count, err := s.users.CountByEmail(ctx, nil, in.Email)
	if err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to check email", err)
	}
	if count > 0 {
		return models.User{}, newAppError(http.StatusBadRequest, "email already registered", nil)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{Email: in.Email, Name: in.Name, Password: hashed}
	if err := s.users.Create(ctx, nil, &user); err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to create user", err)
	}

	// The owner directory is also created lazily on first upload, so a
	// failure here only costs a log line.
	if err := s.allocator.EnsureOwnerDir(user.ID); err != nil {
		logger.Errorf("create storage dir for user %d: %v", user.ID, err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	user, err := s.users.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginOutput{}, newAppError(http.StatusUnauthorized, "invalid email or password", nil)
		}
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to load user", err)
	}
	if !utils.CheckPassword(password, user.Password) {
		return LoginOutput{}, newAppError(http.StatusUnauthorized, "invalid email or password", nil)
	}

	access, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to issue token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to issue refresh token", err)
	}

	return LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         user,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", newAppError(http.StatusUnauthorized, "invalid or expired refresh token", nil)
	}

	user, err := s.users.GetByEmail(ctx, nil, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newAppError(http.StatusUnauthorized, "invalid or expired refresh token", nil)
		}
		return "", newAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	access, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", newAppError(http.StatusInternalServerError, "failed to issue token", err)
	}
	return access, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, newAppError(http.StatusNotFound, "user not found", nil)
		}
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to load user", err)
	}
	return user, nil
}
