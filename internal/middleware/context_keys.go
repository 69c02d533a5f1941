package middleware

import (
	"github.com/finratios/fin_report_app/internal/core/domain"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetCallerFromContext retrieves the authenticated caller (user id + role).
func GetCallerFromContext(c *gin.Context) (portssvc.Caller, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return portssvc.Caller{}, false
	}
	role, _ := c.Request.Context().Value(roleKey).(string)
	if role == "" {
		role = string(domain.RoleUser)
	}
	return portssvc.Caller{UserID: userID, Role: domain.UserRole(role)}, true
}
