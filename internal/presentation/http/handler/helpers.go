package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/middleware"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUsername extracts the username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(middleware.ContextUsername)
}

// GetRole extracts the user role from the Gin context
func GetRole(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}

// bindJSON binds the body and writes a 422 with field errors, or a 400 for
// malformed JSON. It reports whether the handler should continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := request.FieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return false
		}
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	t, err := utils.ParseDate(c.Query(name))
	if err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, name+": "+err.Error())
		return nil, false
	}
	return t, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(name)); err == nil {
		return v
	}
	return fallback
}

// wantsPrint reports whether a payment receipt should be sent to the printer
func wantsPrint(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.Query("print"))
	return v
}
