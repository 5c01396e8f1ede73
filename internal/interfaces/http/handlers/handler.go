package handlers

import (
	"strings"

	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// callerID returns the authenticated principal, writing a 401 when there is none
func callerID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
	}
	return id, ok
}

// pathID reads a required path parameter
func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		response.Error(c, domainerrors.BadRequest(name+" is required"))
		return "", false
	}
	return id, true
}

// bindJSON binds the body, writing a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}
