package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

// UserController manages the relational user table. All routes are
// admin-gated in the router.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var userSortFields = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"email":      "email",
	"full_name":  "full_name",
	"last_login": "last_login",
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	query := uc.DB.Preload("Role").Model(&models.User{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ? OR phone LIKE ?", like, like, like)
	}
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	sortField, ok := userSortFields[c.DefaultQuery("sortBy", "created_at")]
	if !ok {
		sortField = "created_at"
	}
	direction := "DESC"
	if c.Query("order") == "asc" {
		direction = "ASC"
	}
	query = query.Order(sortField + " " + direction)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching users", err)
		return
	}

	// Role filtering happens after the role join has been loaded.
	if role := c.Query("role"); role != "" && role != "all" {
		filtered := users[:0]
		for _, u := range users {
			if u.RoleName() == role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	utils.RespondList(c, http.StatusOK, users, len(users))
}

func (uc *UserController) GetUserByID(c *gin.Context) {
	var user models.User
	err := uc.DB.Preload("Role").First(&user, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error fetching user", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", user)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone"`
		RoleID   uint   `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	user := models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashed),
		FullName:     req.FullName,
		Phone:        req.Phone,
		IsActive:     true,
		RoleID:       req.RoleID,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	uc.DB.Preload("Role").First(&user, user.ID)
	utils.RespondJSON(c, http.StatusCreated, "User created successfully", user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var user models.User
	err := uc.DB.First(&user, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error updating user", err)
		return
	}

	var req struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		FullName *string `json:"full_name"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
		RoleID   *uint   `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation error", err)
		return
	}
	if req.Email == nil && req.FullName == nil && req.Phone == nil && req.IsActive == nil && req.RoleID == nil {
		utils.RespondError(c, http.StatusBadRequest, "No data provided for update", nil)
		return
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error updating user", err)
		return
	}

	uc.DB.Preload("Role").First(&user, user.ID)
	utils.RespondJSON(c, http.StatusOK, "User updated successfully", user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	res := uc.DB.Delete(&models.User{}, c.Param("id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error deleting user", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", nil)
}
