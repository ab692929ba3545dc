package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/config"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/oauth"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/gracechapel/church-admin-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) (*testutil.MockProfileService, *testutil.MockTokenService, *testutil.MockJWTService, *AuthHandler, *config.Config) {
	t.Helper()
	mockProfileService := new(testutil.MockProfileService)
	mockTokenService := new(testutil.MockTokenService)
	mockJWTService := new(testutil.MockJWTService)

	cfg := &config.Config{
		FrontendCallbackURL: "http://localhost:3000/login",
	}

	handler := &AuthHandler{
		cfg:            cfg,
		providers:      make(map[string]oauth.Provider),
		profileService: mockProfileService,
		tokenService:   mockTokenService,
		jwtService:     mockJWTService,
	}

	return mockProfileService, mockTokenService, mockJWTService, handler, cfg
}

func adminProfile(role models.Role, password string) *models.Profile {
	hash, err := services.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &models.Profile{
		ID:           uuid.New(),
		Email:        "staff@example.com",
		PasswordHash: &hash,
		Role:         role,
	}
}

func newAuthApp(handler *AuthHandler) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)
	app.Post("/auth/exchange", handler.ExchangeCode)
	app.Post("/auth/refresh", handler.RefreshToken)
	app.Post("/auth/logout", handler.Logout)
	app.Get("/auth/:provider/consent", handler.GetConsentURL)
	app.Get("/auth/:provider/callback", handler.Callback)
	return app
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockProfileService, mockTokenService, mockJWTService, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleAdmin, "correct-horse")
	tokenPair := &services.TokenPair{
		AccessToken:  "access-token-123",
		RefreshToken: "refresh-token-456",
		ExpiresIn:    900,
	}

	mockProfileService.On("GetByEmail", mock.Anything, profile.Email).Return(profile, nil)
	mockJWTService.On("GenerateTokenPair", profile.ID, profile.Email, models.RoleAdmin).Return(tokenPair, nil)
	mockJWTService.On("RefreshExpiry").Return(24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, profile.ID, mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: profile.Email, Password: "correct-horse"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, "access-token-123", response.AccessToken)
	assert.Equal(t, "refresh-token-456", response.RefreshToken)

	mockProfileService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Login_MemberForbidden(t *testing.T) {
	mockProfileService, _, mockJWTService, handler, _ := setupAuthTest(t)

	// Correct password, but MEMBER accounts never get dashboard tokens.
	profile := adminProfile(models.RoleMember, "correct-horse")
	mockProfileService.On("GetByEmail", mock.Anything, profile.Email).Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: profile.Email, Password: "correct-horse"}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin privileges required")

	mockJWTService.AssertNotCalled(t, "GenerateTokenPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mockProfileService, _, _, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleAdmin, "correct-horse")
	mockProfileService.On("GetByEmail", mock.Anything, profile.Email).Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: profile.Email, Password: "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestAuthHandler_Login_OAuthOnlyAccount(t *testing.T) {
	mockProfileService, _, _, handler, _ := setupAuthTest(t)

	// No password hash stored, so password login cannot succeed.
	profile := &models.Profile{
		ID:    uuid.New(),
		Email: "oauth@example.com",
		Role:  models.RoleAdmin,
	}
	mockProfileService.On("GetByEmail", mock.Anything, profile.Email).Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: profile.Email, Password: "anything"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	mockProfileService, _, _, handler, _ := setupAuthTest(t)

	mockProfileService.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, services.ErrProfileNotFound)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: "nobody@example.com", Password: "x"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/login", dto.LoginRequest{Email: "staff@example.com"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email and password are required")
}

func TestAuthHandler_ExchangeCode_Success(t *testing.T) {
	mockProfileService, mockTokenService, mockJWTService, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleAdmin, "unused")
	tokenPair := &services.TokenPair{
		AccessToken:  "access-token-123",
		RefreshToken: "refresh-token-456",
		ExpiresIn:    900,
	}

	authCode := "test-auth-code"
	handler.authCodes.Store(authCode, authCodeData{
		userID:    profile.ID,
		expiresAt: time.Now().Add(30 * time.Second),
	})

	mockProfileService.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)
	mockJWTService.On("GenerateTokenPair", profile.ID, profile.Email, models.RoleAdmin).Return(tokenPair, nil)
	mockJWTService.On("RefreshExpiry").Return(24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, profile.ID, mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/exchange", dto.ExchangeCodeRequest{Code: authCode}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, "access-token-123", response.AccessToken)

	mockProfileService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_ExchangeCode_MemberForbidden(t *testing.T) {
	mockProfileService, _, mockJWTService, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleMember, "unused")
	authCode := "member-auth-code"
	handler.authCodes.Store(authCode, authCodeData{
		userID:    profile.ID,
		expiresAt: time.Now().Add(30 * time.Second),
	})

	mockProfileService.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/exchange", dto.ExchangeCodeRequest{Code: authCode}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockJWTService.AssertNotCalled(t, "GenerateTokenPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_ExchangeCode_InvalidCode(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/exchange", dto.ExchangeCodeRequest{Code: "invalid-code"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired code")
}

func TestAuthHandler_ExchangeCode_ExpiredCode(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	authCode := "expired-auth-code"
	handler.authCodes.Store(authCode, authCodeData{
		userID:    uuid.New(),
		expiresAt: time.Now().Add(-1 * time.Second),
	})

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/exchange", dto.ExchangeCodeRequest{Code: authCode}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "code expired")
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mockProfileService, mockTokenService, mockJWTService, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleAdmin, "unused")
	oldRefreshToken := "old-refresh-token"
	newTokenPair := &services.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	mockJWTService.On("ValidateRefreshToken", oldRefreshToken).Return(profile.ID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, services.HashToken(oldRefreshToken)).Return(profile.ID, nil)
	mockProfileService.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)
	mockTokenService.On("RevokeRefreshToken", mock.Anything, services.HashToken(oldRefreshToken)).Return(nil)
	mockJWTService.On("GenerateTokenPair", profile.ID, profile.Email, models.RoleAdmin).Return(newTokenPair, nil)
	mockJWTService.On("RefreshExpiry").Return(24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, profile.ID, mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: oldRefreshToken}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, "new-access-token", response.AccessToken)
	assert.Equal(t, "new-refresh-token", response.RefreshToken)

	mockProfileService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_DemotedToMember(t *testing.T) {
	mockProfileService, mockTokenService, mockJWTService, handler, _ := setupAuthTest(t)

	// The stored role is re-read on every refresh, so a demoted admin loses
	// access as soon as the old access token expires.
	profile := adminProfile(models.RoleMember, "unused")
	refreshToken := "still-valid-refresh-token"

	mockJWTService.On("ValidateRefreshToken", refreshToken).Return(profile.ID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, mock.Anything).Return(profile.ID, nil)
	mockProfileService.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: refreshToken}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockJWTService.AssertNotCalled(t, "GenerateTokenPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshToken_RevokedToken(t *testing.T) {
	_, mockTokenService, mockJWTService, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	refreshToken := "revoked-refresh-token"

	mockJWTService.On("ValidateRefreshToken", refreshToken).Return(userID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("no rows"))

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: refreshToken}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh token not found or expired")
}

func TestAuthHandler_RefreshToken_InvalidToken(t *testing.T) {
	_, _, mockJWTService, handler, _ := setupAuthTest(t)

	mockJWTService.On("ValidateRefreshToken", "invalid-token").Return(uuid.Nil, errors.New("invalid token"))

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "invalid-token"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid refresh token")
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/refresh", dto.RefreshTokenRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh_token is required")
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	_, mockTokenService, _, handler, _ := setupAuthTest(t)

	mockTokenService.On("RevokeRefreshToken", mock.Anything, mock.Anything).Return(nil)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.POST("/auth/logout", dto.RefreshTokenRequest{RefreshToken: "some-refresh-token"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out")

	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_LogoutAll_Success(t *testing.T) {
	_, mockTokenService, _, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	mockTokenService.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Post("/auth/logout-all", handler.LogoutAll)

	token := testutil.GenerateTestToken(t, userID, "staff@example.com", models.RoleAdmin)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.POST("/auth/logout-all", nil, map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "all sessions logged out")

	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Session_Success(t *testing.T) {
	mockProfileService, _, _, handler, _ := setupAuthTest(t)

	profile := adminProfile(models.RoleSuperAdmin, "unused")
	mockProfileService.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)

	app := drift.New()
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/auth/session", handler.Session)

	token := testutil.GenerateTestToken(t, profile.ID, profile.Email, profile.Role)
	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/auth/session", map[string]string{"Authorization": testutil.AuthHeader(token)})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.SessionResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, profile.Email, response.Email)
	assert.Equal(t, "SUPER_ADMIN", response.Role)
}

func TestAuthHandler_GetConsentURL_UnsupportedProvider(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.GET("/auth/unsupported/consent", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported provider")
}

func TestAuthHandler_GetConsentURL_Success(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	mockProvider := new(testutil.MockOAuthProvider)
	mockProvider.On("GetConsentURL", mock.AnythingOfType("string")).Return("https://accounts.google.com/o/oauth2/auth?state=abc")
	handler.providers["google"] = mockProvider

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.GET("/auth/google/consent", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ConsentURLResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Contains(t, response.URL, "https://accounts.google.com")

	mockProvider.AssertExpectations(t)
}

func TestAuthHandler_Callback_InvalidState(t *testing.T) {
	_, _, _, handler, _ := setupAuthTest(t)

	mockProvider := new(testutil.MockOAuthProvider)
	handler.providers["google"] = mockProvider

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.GET("/auth/google/callback?code=abc&state=invalid-state", nil)

	// Callback errors render the interstitial page rather than a bare JSON
	// error so the browser tab shows something readable.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired state")
}

func TestAuthHandler_Callback_Success(t *testing.T) {
	mockProfileService, _, _, handler, cfg := setupAuthTest(t)

	mockProvider := new(testutil.MockOAuthProvider)
	userInfo := &oauth.UserInfo{
		Email:    "staff@example.com",
		Name:     "Test Staff",
		ID:       "12345",
		Provider: "google",
	}
	mockProvider.On("ExchangeCode", mock.Anything, "test-code").Return(userInfo, nil)
	handler.providers["google"] = mockProvider

	profile := adminProfile(models.RoleAdmin, "unused")
	mockProfileService.On("FindOrCreateFromOAuth", mock.Anything, userInfo).Return(profile, nil)

	state := "valid-state"
	handler.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	client := testutil.NewHTTPTestClient(t, newAuthApp(handler))
	rec := client.GET("/auth/google/callback?code=test-code&state="+state, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), cfg.FrontendCallbackURL)
	require.Contains(t, rec.Body.String(), "auth-code")

	mockProvider.AssertExpectations(t)
	mockProfileService.AssertExpectations(t)
}
