package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

const identityKey = "identity"

// GetIdentity returns the authenticated identity an auth middleware
// attached to the request, if any.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

func setIdentity(c *gin.Context, identity models.Identity) {
	c.Set(identityKey, identity)
	c.Set("role", identity.Role)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// SessionAuth verifies a locally issued session token and checks the
// backing user record is still present and active.
func SessionAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: Missing token", nil)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: Invalid or expired token", nil)
			c.Abort()
			return
		}

		var user models.User
		err = db.Preload("Role").Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: Invalid token or inactive user", nil)
			c.Abort()
			return
		}

		setIdentity(c, models.Identity{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Phone:    user.Phone,
			Role:     user.RoleName(),
		})
		c.Next()
	}
}

// RequireRoles rejects authenticated identities whose role is not in the
// allow-list.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: User not authenticated", nil)
			c.Abort()
			return
		}

		for _, role := range allowed {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Forbidden: Insufficient permissions", nil)
		c.Abort()
	}
}
