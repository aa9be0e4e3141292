package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerhq/career-platform/internal/api/handler"
	"github.com/careerhq/career-platform/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(&auth.TokenConfig{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)

	return tokens
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTestTokenService(t)

	validToken, err := tokens.Generate("staff-1", auth.RoleStaff)
	require.NoError(t, err)

	otherTokens, err := auth.NewTokenService(&auth.TokenConfig{
		Secret:   "another-secret",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)
	forgedToken, err := otherTokens.Generate("staff-1", auth.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{
			name:           "no header",
			authorization:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing bearer prefix",
			authorization:  validToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authorization:  "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong signing secret",
			authorization:  "Bearer " + forgedToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authorization:  "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AuthRequired(tokens))
			r.GET("/protected", func(c *gin.Context) {
				identity, ok := handler.CurrentIdentity(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"staff_id": identity.StaffID})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTestTokenService(t)

	tests := []struct {
		name           string
		role           auth.Role
		expectedStatus int
	}{
		{
			name:           "staff role is rejected",
			role:           auth.RoleStaff,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin role passes",
			role:           auth.RoleAdmin,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Generate("staff-1", tt.role)
			require.NoError(t, err)

			r := gin.New()
			r.Use(AuthRequired(tokens), AdminRequired())
			r.GET("/admin", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAdminRequired_WithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AdminRequired())
	r.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
