package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/shared/server/middleware"
	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

// meHandler echoes the caller identity resolved by the auth middleware so
// clients can confirm which guest key scopes their uploads.
func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"userId":  userID,
		"isGuest": true,
	})
}
