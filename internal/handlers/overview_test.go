package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/gracechapel/church-admin-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOverviewHandler_Get(t *testing.T) {
	mockProfileService := new(testutil.MockProfileService)
	mockDevotionalService := new(testutil.MockDevotionalService)
	mockSermonService := new(testutil.MockSermonService)
	mockAudioService := new(testutil.MockAudioService)
	mockOutlineService := new(testutil.MockOutlineService)

	mockProfileService.On("Stats", mock.Anything).Return(&models.ProfileStats{
		TotalUsers:  120,
		ActiveUsers: 40,
		NewUsers:    8,
	}, nil)
	mockDevotionalService.On("Count", mock.Anything).Return(12, nil)
	mockSermonService.On("Count", mock.Anything).Return(30, nil)
	mockAudioService.On("Count", mock.Anything).Return(7, nil)
	mockOutlineService.On("Count", mock.Anything).Return(4, nil)

	handler := NewOverviewHandler(mockProfileService, mockDevotionalService, mockSermonService, mockAudioService, mockOutlineService)

	app := drift.New()
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/overview", handler.Get)

	token := testutil.GenerateTestToken(t, uuid.New(), "admin@example.com", models.RoleAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/overview", map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.OverviewResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, 120, response.TotalUsers)
	assert.Equal(t, 40, response.ActiveUsers)
	assert.Equal(t, 8, response.NewUsers)
	assert.Equal(t, 12, response.TotalDevotional)
	assert.Equal(t, 30, response.TotalSermons)
	assert.Equal(t, 7, response.TotalAudio)
	assert.Equal(t, 4, response.TotalOutlines)
}

func TestOverviewHandler_Get_StatsError(t *testing.T) {
	mockProfileService := new(testutil.MockProfileService)
	mockProfileService.On("Stats", mock.Anything).Return(nil, assert.AnError)

	handler := NewOverviewHandler(mockProfileService,
		new(testutil.MockDevotionalService),
		new(testutil.MockSermonService),
		new(testutil.MockAudioService),
		new(testutil.MockOutlineService))

	app := drift.New()
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/overview", handler.Get)

	token := testutil.GenerateTestToken(t, uuid.New(), "admin@example.com", models.RoleAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/overview", map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
