package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"quotedesk/models"
	"quotedesk/storage"

	"github.com/gin-gonic/gin"
)

// GetAllUsers lists every account (admin back office).
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /api/users [get]
func GetAllUsers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := storage.ListUsers(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
	}
}

// UpdateUser changes an account's role and/or region.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/{id} [put]
func UpdateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}

		var req models.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if req.Role != "" && req.Role != "admin" && req.Role != "user" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or user"})
			return
		}
		if req.Region != "" && !models.ValidRegion(req.Region) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
			return
		}

		if err := storage.UpdateUserRoleRegion(db, id, req.Role, req.Region); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// DeleteUser removes an account. The default admin cannot delete itself.
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/{id} [delete]
func DeleteUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}

		user, _ := CurrentUser(c)
		if user != nil && user.ID == id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the account you are logged in with"})
			return
		}

		if err := storage.DeleteUser(db, id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
