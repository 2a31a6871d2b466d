package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/handler"
	authservice "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *ExpenseHandler, tokenService authservice.TokenGenerator) {
	expenses := app.Group("/api/v1/expenses", authhandler.RequireAuth(tokenService))
	expenses.Get("/", h.GetAll)
	expenses.Post("/", h.Create)
	expenses.Get("/last/:days", h.GetLastNDays)
	expenses.Get("/range/:from/:to", h.GetByDateRange)
	expenses.Put("/:id", h.Update)
	expenses.Delete("/:id", h.Delete)
}
