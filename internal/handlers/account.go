package handlers

import (
	"strconv"

	"bankapp/internal/services/account"
	"bankapp/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes account opening, deposits and reads.
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(s account.Service) *AccountHandler { return &AccountHandler{service: s} }

// Open handles POST /api/accounts.
func (h *AccountHandler) Open(c *fiber.Ctx) error {
	var req account.OpenAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	acc, err := h.service.OpenAccount(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "account opened",
		"data":    acc,
	})
}

// Deposit handles POST /api/accounts/deposit.
func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	var req account.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	result, err := h.service.Deposit(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "deposit completed", result)
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.service.GetMyAccounts(c.Context(), username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "accounts", accounts)
}

// Get handles GET /api/accounts/:id.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	acc, err := h.service.GetAccountDetails(c.Context(), uint(id), username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "account", acc)
}
