package middleware

import "github.com/gin-gonic/gin"

// usernameKey is the key under which handlers record the account a request
// acted on, once its credentials were accepted.
const usernameKey = contextKey("username")

// SetUsername records the authenticated username on the Gin context.
func SetUsername(c *gin.Context, username string) {
	c.Set(string(usernameKey), username)
}

// GetUsernameFromContext retrieves the authenticated username from the Gin context.
// It returns the username and a boolean indicating if it was found.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(usernameKey))
	if !exists {
		return "", false
	}

	username, ok := val.(string)
	if !ok || username == "" {
		return "", false
	}

	return username, true
}
