package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func newAuthApp(jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{
			"user_id": GetUserID(c).String(),
			"email":   GetUserEmail(c),
			"role":    GetUserRole(c).String(),
		})
	})
	return app
}

func TestAuth_ValidToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := newAuthApp(jwtSvc)

	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(userID, "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "ADMIN")
}

func TestAuth_MissingHeader(t *testing.T) {
	app := newAuthApp(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	app := newAuthApp(newTestJWTService())

	testCases := []string{
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"just-a-token",
	}

	for _, header := range testCases {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()

			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	otherSvc := services.NewJWTService("other-secret", 15*time.Minute, 24*time.Hour)
	app := newAuthApp(jwtSvc)

	pair, err := otherSvc.GenerateTokenPair(uuid.New(), "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserID_NotSet(t *testing.T) {
	app := drift.New()
	app.Get("/open", func(c *drift.Context) {
		assert.Equal(t, uuid.Nil, GetUserID(c))
		assert.Equal(t, "", GetUserEmail(c))
		assert.Equal(t, models.Role(""), GetUserRole(c))
		_ = c.JSON(200, map[string]string{"ok": "true"})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
