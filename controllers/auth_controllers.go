package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Waqasabid99/rms-backend/middlewares"
	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login checks credentials against the relational user table and issues a
// 24h session token.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	var user models.User
	err := ac.DB.Preload("Role").Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	if !user.IsActive {
		utils.RespondError(c, http.StatusForbidden, "Account is inactive. Please contact administrator.", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	now := time.Now()
	if err := ac.DB.Model(&user).Update("last_login", &now).Error; err != nil {
		utils.ErrorLogger.Printf("failed to record last_login for %s: %v", user.Email, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.RoleName())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error during login", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"phone":     user.Phone,
			"role":      user.RoleName(),
		},
	})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: User not authenticated", nil)
		return
	}

	var user models.User
	if err := ac.DB.Preload("Role").First(&user, identity.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "User not found", nil)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching profile", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"full_name":        user.FullName,
		"phone":            user.Phone,
		"is_active":        user.IsActive,
		"last_login":       user.LastLogin,
		"created_at":       user.CreatedAt,
		"role":             user.RoleName(),
		"role_description": user.Role.Description,
	})
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: User not authenticated", nil)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Current password and new password are required", nil)
		return
	}
	if len(req.NewPassword) < 6 {
		utils.RespondError(c, http.StatusBadRequest, "New password must be at least 6 characters long", nil)
		return
	}

	var user models.User
	if err := ac.DB.First(&user, identity.ID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "User not found", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Current password is incorrect", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error changing password", err)
		return
	}

	if err := ac.DB.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error changing password", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password changed successfully", nil)
}
