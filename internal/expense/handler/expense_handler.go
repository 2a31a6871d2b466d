package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/handler"
	autherror "github.com/Ylandolsi/ExpenseTrackerApi/internal/errors"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/dto"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/service"
)

const dateLayout = "2006-01-02"

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) GetAll(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	expenses, err := h.expenseService.GetAll(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get expenses"})
	}

	return c.Status(fiber.StatusOK).JSON(expenses)
}

func (h *ExpenseHandler) GetByDateRange(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	start, err := time.Parse(dateLayout, c.Params("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dates must be in the format yyyy-mm-dd"})
	}
	end, err := time.Parse(dateLayout, c.Params("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dates must be in the format yyyy-mm-dd"})
	}

	expenses, err := h.expenseService.GetByDateRange(c.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidDateRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get expenses"})
	}

	return c.Status(fiber.StatusOK).JSON(expenses)
}

func (h *ExpenseHandler) GetLastNDays(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	days, err := c.ParamsInt("days")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be a number"})
	}

	expenses, err := h.expenseService.GetLastNDays(c.Context(), userID, days)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidLastDays) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get expenses"})
	}

	return c.Status(fiber.StatusOK).JSON(expenses)
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	var input dto.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	expense, err := h.expenseService.Create(c.Context(), userID, input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(expense)
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	expenseID, err := c.ParamsInt("id")
	if err != nil || expenseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid expense id"})
	}

	var input dto.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.expenseService.Update(c.Context(), userID, int64(expenseID), input); err != nil {
		if errors.Is(err, autherror.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "expense updated"})
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	userID := authhandler.UserIDFromContext(c)

	expenseID, err := c.ParamsInt("id")
	if err != nil || expenseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid expense id"})
	}

	if err := h.expenseService.Delete(c.Context(), userID, int64(expenseID)); err != nil {
		if errors.Is(err, autherror.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete expense"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "expense deleted"})
}
