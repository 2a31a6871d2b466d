package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/service"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/domain"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/dto"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/handler"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/service"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/mocks"
)

func newExpenseApp(t *testing.T, ctrl *gomock.Controller) (*fiber.App, *mocks.MockExpenseRepository, *mocks.MockCache, *authservice.TokenService) {
	t.Helper()

	mockRepo := mocks.NewMockExpenseRepository(ctrl)
	mockCache := mocks.NewMockCache(ctrl)
	tokenService := authservice.NewTokenService("secret", "ExpenseTrackerApi", "ExpenseTrackerClient", 60, 10080)

	expenseService := service.NewExpenseService(mockRepo, mockCache, time.Minute)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	app := fiber.New()
	handler.RegisterRoutes(app, expenseHandler, tokenService)

	return app, mockRepo, mockCache, tokenService
}

func TestExpenseRoutes_RequireAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, _, _ := newExpenseApp(t, ctrl)

	req := httptest.NewRequest("GET", "/api/v1/expenses/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetByDateRangeEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockCache, tokenService := newExpenseApp(t, ctrl)
	token, _, err := tokenService.Generate(42, "tester", "test@example.com")
	require.NoError(t, err)

	get := func(path string) (int, []byte) {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, body
	}

	t.Run("valid range", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

		mockCache.EXPECT().Get(gomock.Any(), "expenses:42:2025-01-01:2025-01-31").Return(nil, false, nil)
		mockRepo.EXPECT().GetByDateRange(gomock.Any(), int64(42), start, end).Return([]domain.Expense{}, nil)
		mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		code, body := get("/api/v1/expenses/range/2025-01-01/2025-01-31")
		assert.Equal(t, fiber.StatusOK, code)

		var out []dto.ExpenseOutput
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Empty(t, out)
	})

	t.Run("start after end is a bad request, not empty", func(t *testing.T) {
		code, _ := get("/api/v1/expenses/range/2025-01-31/2025-01-01")
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("malformed date is a bad request", func(t *testing.T) {
		code, _ := get("/api/v1/expenses/range/not-a-date/2025-01-31")
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("negative last days is a bad request", func(t *testing.T) {
		code, _ := get("/api/v1/expenses/last/-1")
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}
