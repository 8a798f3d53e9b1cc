package handlers

import (
	"net/http"
	"strconv"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's profile
func Me(c *gin.Context) {
	user, err := userSvc.FindByID(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUser returns a user by id; non-admins may only read themselves
func GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.IdentityFrom(c)
	if identity.Role != models.RoleAdmin && identity.UserID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	user, err := userSvc.FindByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns all users, sanitized. Admin only (policy enforced).
func ListUsers(c *gin.Context) {
	users, err := userSvc.FindAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateProfile patches a user's profile and returns a fresh access token
func UpdateProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := middleware.IdentityFrom(c)
	patch := services.ProfilePatch{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	}
	user, access, err := userSvc.UpdateProfile(id, patch, identity.UserID, identity.Role)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Profile updated",
		"user":         user,
		"access_token": access,
	})
}

// DeleteUser removes a user. Admin only.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := userSvc.Delete(id, middleware.GetRole(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// parseID reads a uint path parameter, writing a 400 on malformed input.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": " + raw})
		return 0, false
	}
	return uint(id), true
}
