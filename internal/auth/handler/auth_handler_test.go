package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/domain"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/dto"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/handler"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/service"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/mocks"
)

const maxActiveTokens = 5

func newTestApp(t *testing.T, ctrl *gomock.Controller) (*fiber.App, *mocks.MockUserRepository, *mocks.MockRefreshTokenRepository, *mocks.MockTokenGenerator) {
	t.Helper()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockRefreshTokenRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)

	authService := service.NewAuthService(mockUsers, mockTokens, mockTokenService, maxActiveTokens)
	userService := service.NewUserService(mockUsers)
	authHandler := handler.NewAuthHandler(authService, userService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return app, mockUsers, mockTokens, mockTokenService
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, []byte) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestRegisterEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockUsers, _, _ := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		mockUsers.EXPECT().GetByEmailOrPhone(gomock.Any(), "test@example.com", "").Return(nil, nil)
		mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		code, _ := postJSON(t, app, "/api/v1/register", dto.RegisterInput{
			Name:        "tester",
			Email:       "test@example.com",
			PhoneNumber: "21111111",
			Password:    "password123",
		})

		assert.Equal(t, fiber.StatusCreated, code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/register", bytes.NewReader([]byte("")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockUsers, mockTokens, mockTokenService := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		require.NoError(t, err)
		user := &domain.User{ID: 42, Name: "tester", Email: "test@example.com", PasswordHash: string(hash)}

		mockUsers.EXPECT().GetByEmailOrPhone(gomock.Any(), user.Email, "").Return(user, nil)
		mockTokenService.EXPECT().Generate(user.ID, user.Name, user.Email).Return("access-token", time.Now().Add(time.Hour), nil)
		mockTokenService.EXPECT().GenerateRefreshToken().Return("refresh-token", nil)
		mockTokenService.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
		mockTokens.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil)
		mockTokens.EXPECT().CountActiveByUserID(gomock.Any(), user.ID).Return(1, nil)

		code, body := postJSON(t, app, "/api/v1/login", dto.LoginInput{Email: user.Email, Password: "password123"})
		assert.Equal(t, fiber.StatusOK, code)

		var tokens dto.TokenResponse
		require.NoError(t, json.Unmarshal(body, &tokens))
		assert.Equal(t, "access-token", tokens.AccessToken)
		assert.Equal(t, "refresh-token", tokens.RefreshToken)
	})

	t.Run("unknown credential pair is unauthorized", func(t *testing.T) {
		mockUsers.EXPECT().GetByEmailOrPhone(gomock.Any(), "a@b.com", "").Return(nil, nil)

		code, body := postJSON(t, app, "/api/v1/login", dto.LoginInput{Email: "a@b.com", Password: "pw123"})
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Contains(t, string(body), "invalid credentials")
	})

	t.Run("missing identifiers is a bad request", func(t *testing.T) {
		code, _ := postJSON(t, app, "/api/v1/login", dto.LoginInput{Password: "pw123"})
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockUsers, mockTokens, mockTokenService := newTestApp(t, ctrl)

	t.Run("success rotates the token", func(t *testing.T) {
		record := &domain.RefreshToken{ID: "rt-1", UserID: 42, Token: "old-refresh", ExpiresAt: time.Now().Add(time.Hour)}
		user := &domain.User{ID: 42, Name: "tester", Email: "test@example.com"}

		mockTokens.EXPECT().Resolve(gomock.Any(), "old-refresh").Return(record, nil)
		mockUsers.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		mockTokens.EXPECT().Revoke(gomock.Any(), "old-refresh").Return(true, nil)
		mockTokenService.EXPECT().Generate(user.ID, user.Name, user.Email).Return("new-access", time.Now().Add(time.Hour), nil)
		mockTokenService.EXPECT().GenerateRefreshToken().Return("new-refresh", nil)
		mockTokenService.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)
		mockTokens.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil)

		code, body := postJSON(t, app, "/api/v1/refresh", dto.RefreshInput{RefreshToken: "old-refresh"})
		assert.Equal(t, fiber.StatusOK, code)

		var tokens dto.TokenResponse
		require.NoError(t, json.Unmarshal(body, &tokens))
		assert.Equal(t, "new-refresh", tokens.RefreshToken)
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		mockTokens.EXPECT().Resolve(gomock.Any(), "unknown").Return(nil, nil)

		code, _ := postJSON(t, app, "/api/v1/refresh", dto.RefreshInput{RefreshToken: "unknown"})
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("empty token is a bad request", func(t *testing.T) {
		code, _ := postJSON(t, app, "/api/v1/refresh", dto.RefreshInput{})
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}

func TestRevokeEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, mockTokens, _ := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		mockTokens.EXPECT().Revoke(gomock.Any(), "refresh-token").Return(true, nil)

		code, _ := postJSON(t, app, "/api/v1/revoke", dto.RefreshInput{RefreshToken: "refresh-token"})
		assert.Equal(t, fiber.StatusOK, code)
	})

	t.Run("absent token is not found", func(t *testing.T) {
		mockTokens.EXPECT().Revoke(gomock.Any(), "absent").Return(false, nil)

		code, _ := postJSON(t, app, "/api/v1/revoke", dto.RefreshInput{RefreshToken: "absent"})
		assert.Equal(t, fiber.StatusNotFound, code)
	})
}
