package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("test-secret", time.Minute, time.Hour)
	userID := uuid.New()
	token, err := jwt.GenerateAccessToken(userID, "meena", "staff", []string{"billing:write"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       c.MustGet(ContextUserID).(uuid.UUID).String(),
			"username": c.GetString(ContextUsername),
			"role":     c.GetString(ContextRole),
		})
	})
	r.GET("/billing", AuthMiddleware(jwt), RequirePermission("billing:write"), ok)
	r.GET("/credit", AuthMiddleware(jwt), RequirePermission("credit:manage"), ok)
	r.GET("/admin", AuthMiddleware(jwt), RequireRole("admin"), ok)

	rec := serve(r, http.MethodGet, "/me", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","username":"meena","role":"staff"}`, rec.Body.String())

	cases := []struct {
		name   string
		path   string
		header string
		code   int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"lower case scheme", "/me", "bearer " + token, http.StatusOK},
		{"has permission", "/billing", "Bearer " + token, http.StatusOK},
		{"lacks permission", "/credit", "Bearer " + token, http.StatusForbidden},
		{"wrong role", "/admin", "Bearer " + token, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var headers []string
			if tc.header != "" {
				headers = []string{"Authorization", tc.header}
			}
			assert.Equal(t, tc.code, serve(r, http.MethodGet, tc.path, "", headers...).Code)
		})
	}
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", RequirePermission("billing:write"), ok)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/", "").Code)
}
