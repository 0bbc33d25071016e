package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"quotedesk/models"
	"quotedesk/storage"
	"quotedesk/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the session token from the Authorization header.
// A "Bearer " prefix is accepted but not required.
func bearerToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(token, prefix) {
		token = strings.TrimSpace(strings.TrimPrefix(token, prefix))
	}
	return token
}

// authenticate resolves the Authorization token to its account. The token is
// a signed JWT whose signature and expiry are checked before the session row
// is consulted, so a forged or expired token never reaches the database.
func authenticate(db *sql.DB, c *gin.Context) (*models.User, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, errAuthHeaderMissing
	}
	if _, err := utils.ValidateJWT(token); err != nil {
		return nil, err
	}
	return storage.GetUserBySessionID(db, token)
}

var errAuthHeaderMissing = errors.New("authorization header is missing")

// SessionAuth resolves the Authorization header to an account and stores it
// in the request context for the handlers downstream.
func SessionAuth(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin gates a route to administrator accounts. Must run after
// SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Administrator role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser fetches the authenticated account stored by SessionAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// ValidateSessionHandler lets the client check whether its token is still
// good and refresh its view of the account.
// @Summary Validate session
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [post]
func ValidateSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(db, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Session is valid", "user": user})
	}
}
