package handler

import "github.com/gin-gonic/gin"

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
