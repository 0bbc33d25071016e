package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"quotedesk/models"
	"quotedesk/storage"
	"quotedesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// sessionTTL is how long a login session stays valid.
const sessionTTL = 24 * time.Hour

// LoginHandler authenticates a user and opens a session.
// @Summary Login user
// @Description Verify credentials, create a session and issue an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginData models.LoginRequest
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := storage.GetUserByUsername(db, loginData.Username)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		// The signed JWT is the session token: middleware checks its
		// signature and expiry before the session row is even looked up.
		accessToken, err := utils.GenerateJWT(user.Username, sessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
			return
		}

		session := &models.Session{
			UserID:    user.ID,
			SessionID: accessToken,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(sessionTTL),
		}
		if err := storage.SaveSession(db, session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			Message:   "Login successful",
			SessionID: session.SessionID,
			Username:  user.Username,
			Role:      user.Role,
			Region:    user.Region,
		})
	}
}

// RegisterHandler creates a regular user account.
// @Summary Register user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "New account"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/register [post]
func RegisterHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, password and region are required"})
			return
		}
		if !models.ValidRegion(req.Region) || req.Region == models.RegionAll {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		if _, err := storage.CreateUser(db, req.Username, hash, "user", req.Region); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful, please log in"})
	}
}

// LogoutHandler ends the current session.
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := bearerToken(c)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header is missing"})
			return
		}
		if err := storage.DeleteSessionByID(db, sessionID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
