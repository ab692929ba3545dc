package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/config"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/internal/sse"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/gracechapel/church-admin-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminTest(t *testing.T, cfg *config.Config) (*testutil.MockAdminService, *testutil.MockProfileService, *testutil.MockEmailService, http.Handler) {
	t.Helper()
	mockAdminService := new(testutil.MockAdminService)
	mockProfileService := new(testutil.MockProfileService)
	mockEmailService := new(testutil.MockEmailService)

	hub := sse.NewHub()
	go hub.Run()

	handler := NewAdminHandler(cfg, mockAdminService, mockProfileService, mockEmailService, hub)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/admin/bootstrap", handler.Bootstrap)

	protected := app.Group("")
	protected.Use(middleware.Auth(testutil.TestJWTService()))
	protected.Use(middleware.RequireRole(models.RoleSuperAdmin))
	protected.Post("/admin/roles", handler.ManageRole)

	return mockAdminService, mockProfileService, mockEmailService, app
}

func TestAdminHandler_ManageRole_Grant(t *testing.T) {
	mockAdminService, mockProfileService, mockEmailService, app := setupAdminTest(t, &config.Config{})

	callerID := uuid.New()
	targetID := uuid.New()
	target := &models.Profile{ID: targetID, Email: "member@example.com", Role: models.RoleAdmin}

	mockAdminService.On("ManageRole", mock.Anything, callerID, targetID, services.RoleActionGrant).Return(models.RoleAdmin, nil)
	mockProfileService.On("GetByID", mock.Anything, targetID).Return(target, nil)
	mockEmailService.On("SendRoleChanged", "member@example.com", "ADMIN").Return(nil)

	token := testutil.GenerateTestToken(t, callerID, "super@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: targetID, Action: "grant"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ManageRoleResponse
	testutil.ParseJSON(t, rec, &response)
	assert.True(t, response.Success)
	assert.Equal(t, "ADMIN", response.Role)

	mockAdminService.AssertExpectations(t)
	mockEmailService.AssertExpectations(t)
}

func TestAdminHandler_ManageRole_Revoke(t *testing.T) {
	mockAdminService, mockProfileService, mockEmailService, app := setupAdminTest(t, &config.Config{})

	callerID := uuid.New()
	targetID := uuid.New()
	target := &models.Profile{ID: targetID, Email: "demoted@example.com", Role: models.RoleMember}

	mockAdminService.On("ManageRole", mock.Anything, callerID, targetID, services.RoleActionRevoke).Return(models.RoleMember, nil)
	mockProfileService.On("GetByID", mock.Anything, targetID).Return(target, nil)
	mockEmailService.On("SendRoleChanged", "demoted@example.com", "MEMBER").Return(nil)

	token := testutil.GenerateTestToken(t, callerID, "super@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: targetID, Action: "revoke"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ManageRoleResponse
	testutil.ParseJSON(t, rec, &response)
	assert.True(t, response.Success)
	assert.Equal(t, "MEMBER", response.Role)
}

func TestAdminHandler_ManageRole_NotAuthorized(t *testing.T) {
	mockAdminService, _, _, app := setupAdminTest(t, &config.Config{})

	callerID := uuid.New()
	targetID := uuid.New()

	// The token claims SUPER_ADMIN but the stored role disagrees, so the
	// service refuses.
	mockAdminService.On("ManageRole", mock.Anything, callerID, targetID, services.RoleActionGrant).Return(models.Role(""), services.ErrNotAuthorized)

	token := testutil.GenerateTestToken(t, callerID, "pretender@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: targetID, Action: "grant"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied")
}

func TestAdminHandler_ManageRole_TargetNotFound(t *testing.T) {
	mockAdminService, _, _, app := setupAdminTest(t, &config.Config{})

	callerID := uuid.New()
	targetID := uuid.New()

	mockAdminService.On("ManageRole", mock.Anything, callerID, targetID, services.RoleActionGrant).Return(models.Role(""), services.ErrProfileNotFound)

	token := testutil.GenerateTestToken(t, callerID, "super@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: targetID, Action: "grant"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminHandler_ManageRole_InvalidAction(t *testing.T) {
	_, _, _, app := setupAdminTest(t, &config.Config{})

	token := testutil.GenerateTestToken(t, uuid.New(), "super@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: uuid.New(), Action: "promote"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response dto.ManageRoleResponse
	testutil.ParseJSON(t, rec, &response)
	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Error)
}

func TestAdminHandler_ManageRole_AdminTokenBlocked(t *testing.T) {
	mockAdminService, _, _, app := setupAdminTest(t, &config.Config{})

	// Role mutation is gated to SUPER_ADMIN tokens before the handler runs.
	token := testutil.GenerateTestToken(t, uuid.New(), "admin@example.com", models.RoleAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: uuid.New(), Action: "grant"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockAdminService.AssertNotCalled(t, "ManageRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_ManageRole_EmailFailureStillSucceeds(t *testing.T) {
	mockAdminService, mockProfileService, mockEmailService, app := setupAdminTest(t, &config.Config{})

	callerID := uuid.New()
	targetID := uuid.New()
	target := &models.Profile{ID: targetID, Email: "member@example.com", Role: models.RoleAdmin}

	mockAdminService.On("ManageRole", mock.Anything, callerID, targetID, services.RoleActionGrant).Return(models.RoleAdmin, nil)
	mockProfileService.On("GetByID", mock.Anything, targetID).Return(target, nil)
	mockEmailService.On("SendRoleChanged", "member@example.com", "ADMIN").Return(assert.AnError)

	token := testutil.GenerateTestToken(t, callerID, "super@example.com", models.RoleSuperAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/admin/roles",
		dto.ManageRoleRequest{UserID: targetID, Action: "grant"},
		map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminHandler_Bootstrap_Success(t *testing.T) {
	cfg := &config.Config{AdminSetupSecret: "setup-secret"}
	mockAdminService, _, _, app := setupAdminTest(t, cfg)

	profile := &models.Profile{
		ID:    uuid.New(),
		Email: "founder@example.com",
		Role:  models.RoleSuperAdmin,
	}
	mockAdminService.On("BootstrapSuperAdmin", mock.Anything, "founder@example.com").Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/bootstrap?secret_key=setup-secret&email=founder@example.com", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.BootstrapResponse
	testutil.ParseJSON(t, rec, &response)
	assert.True(t, response.Success)
	assert.Contains(t, response.Message, "founder@example.com")

	mockAdminService.AssertExpectations(t)
}

func TestAdminHandler_Bootstrap_WrongSecret(t *testing.T) {
	cfg := &config.Config{AdminSetupSecret: "setup-secret"}
	mockAdminService, _, _, app := setupAdminTest(t, cfg)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/bootstrap?secret_key=wrong&email=founder@example.com", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockAdminService.AssertNotCalled(t, "BootstrapSuperAdmin", mock.Anything, mock.Anything)
}

func TestAdminHandler_Bootstrap_DisabledWithoutSecret(t *testing.T) {
	mockAdminService, _, _, app := setupAdminTest(t, &config.Config{})

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/bootstrap?secret_key=anything&email=founder@example.com", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockAdminService.AssertNotCalled(t, "BootstrapSuperAdmin", mock.Anything, mock.Anything)
}

func TestAdminHandler_Bootstrap_UnknownEmail(t *testing.T) {
	cfg := &config.Config{AdminSetupSecret: "setup-secret"}
	mockAdminService, _, _, app := setupAdminTest(t, cfg)

	mockAdminService.On("BootstrapSuperAdmin", mock.Anything, "nobody@example.com").Return(nil, services.ErrProfileNotFound)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/bootstrap?secret_key=setup-secret&email=nobody@example.com", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
