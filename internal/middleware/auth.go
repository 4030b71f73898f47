package middleware

import (
	"net/http"

	"freeboard/internal/db"
	"freeboard/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	users := db.NewUserStore()
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if id, ok := userID.(uint); ok {
			user, err := users.FindByID(id)
			if err == nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}

// StagingSID returns the session's editing id, minting one on first use. It
// keys the staged gallery-removal sets, so each browser session edits in
// isolation.
func StagingSID(c *gin.Context) string {
	session := sessions.Default(c)
	if sid, ok := session.Get("sid").(string); ok && sid != "" {
		return sid
	}
	sid := utils.RandStringBytesMaskImpr(16)
	session.Set("sid", sid)
	if err := session.Save(); err != nil {
		return sid
	}
	return sid
}
