package Controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Waqasabid99/rms-backend/controllers"
	"github.com/Waqasabid99/rms-backend/middlewares"
	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()
	// a named in-memory database keeps the pool's connections on the same
	// store while isolating tests from each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	admin := models.Role{Name: "admin", Description: "Full access"}
	staff := models.Role{Name: "staff", Description: "Day to day operations"}
	db.Create(&admin)
	db.Create(&staff)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Email:        "manager@example.com",
		PasswordHash: string(hashed),
		FullName:     "Restaurant Manager",
		IsActive:     true,
		RoleID:       admin.ID,
	})
	db.Create(&models.User{
		Email:        "former@example.com",
		PasswordHash: string(hashed),
		FullName:     "Former Employee",
		IsActive:     false,
		RoleID:       staff.ID,
	})
	return db
}

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	r := gin.New()
	authCtrl := controllers.NewAuthController(db)
	userCtrl := controllers.NewUserController(db)

	r.POST("/auth/login", authCtrl.Login)

	session := r.Group("/auth")
	session.Use(middlewares.SessionAuth(db))
	session.GET("/profile", authCtrl.GetProfile)
	session.POST("/change-password", authCtrl.ChangePassword)

	users := r.Group("/users")
	users.Use(middlewares.SessionAuth(db), middlewares.RequireRoles("admin"))
	users.GET("/", userCtrl.GetAllUsers)
	users.POST("/", userCtrl.CreateUser)
	return r
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": email, "password": password})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	return data["token"].(string)
}

func TestLoginSuccess(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "Manager@Example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, "Login successful", resp.Message)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])

	// last_login gets stamped
	var stored models.User
	db.Where("email = ?", "manager@example.com").First(&stored)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "manager@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, "Invalid email or password", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "former@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account is inactive. Please contact administrator.", decodeEnvelope(t, w).Message)
}

func TestLoginMissingFields(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "manager@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decodeEnvelope(t, w).Message)
}

func TestProfileRequiresToken(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	w := doJSON(r, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized: Missing token", decodeEnvelope(t, w).Message)

	bad := doJSON2(r, http.MethodGet, "/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Equal(t, "Unauthorized: Invalid or expired token", decodeEnvelope(t, bad).Message)
}

func TestProfileWithToken(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)
	token := login(t, r, "manager@example.com", "secret123")

	w := doJSON2(r, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "manager@example.com", data["email"])
	assert.Equal(t, "admin", data["role"])
}

func TestChangePassword(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)
	token := login(t, r, "manager@example.com", "secret123")

	wrong := doJSON2(r, http.MethodPost, "/auth/change-password", token,
		gin.H{"currentPassword": "nope", "newPassword": "newsecret"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, "Current password is incorrect", decodeEnvelope(t, wrong).Message)

	short := doJSON2(r, http.MethodPost, "/auth/change-password", token,
		gin.H{"currentPassword": "secret123", "newPassword": "abc"})
	assert.Equal(t, http.StatusBadRequest, short.Code)

	ok := doJSON2(r, http.MethodPost, "/auth/change-password", token,
		gin.H{"currentPassword": "secret123", "newPassword": "newsecret"})
	assert.Equal(t, http.StatusOK, ok.Code)

	// old password stops working
	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"email": "manager@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	login(t, r, "manager@example.com", "newsecret")
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)

	// promote the staff user back to active for this test
	db.Model(&models.User{}).Where("email = ?", "former@example.com").Update("is_active", true)
	staffToken := login(t, r, "former@example.com", "secret123")

	w := doJSON2(r, http.MethodGet, "/users/", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Insufficient permissions", decodeEnvelope(t, w).Message)

	adminToken := login(t, r, "manager@example.com", "secret123")
	ok := doJSON2(r, http.MethodGet, "/users/", adminToken, nil)
	assert.Equal(t, http.StatusOK, ok.Code)
}

func TestAdminCreatesUser(t *testing.T) {
	db := setupAuthDB(t)
	r := setupAuthRouter(db)
	adminToken := login(t, r, "manager@example.com", "secret123")

	var staffRole models.Role
	db.Where("name = ?", "staff").First(&staffRole)

	w := doJSON2(r, http.MethodPost, "/users/", adminToken, gin.H{
		"email":     "NEW@Example.com",
		"password":  "welcome1",
		"full_name": "New Hire",
		"role_id":   staffRole.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.User
	assert.NoError(t, db.Where("email = ?", "new@example.com").First(&created).Error)

	// the fresh account can log in right away
	login(t, r, "new@example.com", "welcome1")
}
