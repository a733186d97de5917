package handlers

import (
	"errors"

	"bankapp/internal/repositories"
	"bankapp/internal/services/account"
	"bankapp/internal/services/card"
	"bankapp/internal/services/deposit"
	"bankapp/internal/services/transfer"
	"bankapp/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError translates service and repository errors into HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrAccountNotFound),
		errors.Is(err, repositories.ErrTransactionNotFound),
		errors.Is(err, repositories.ErrCardNotFound),
		errors.Is(err, repositories.ErrDepositNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, transfer.ErrNotOwner),
		errors.Is(err, account.ErrNotOwner),
		errors.Is(err, card.ErrNotOwner),
		errors.Is(err, card.ErrAccountNotOwned),
		errors.Is(err, deposit.ErrNotOwner),
		errors.Is(err, deposit.ErrAccountNotOwned):
		return response.Forbidden(c, err.Error())

	case errors.Is(err, transfer.ErrInsufficientBalance),
		errors.Is(err, card.ErrInsufficientBalance):
		return response.Error(c, fiber.StatusPaymentRequired, err.Error())

	default:
		return response.BadRequest(c, err.Error())
	}
}

func username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}
