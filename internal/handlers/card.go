package handlers

import (
	"context"
	"strconv"

	"bankapp/internal/models"
	"bankapp/internal/services/card"
	"bankapp/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CardHandler exposes the card lifecycle and card payment endpoints.
type CardHandler struct {
	service card.Service
}

func NewCardHandler(s card.Service) *CardHandler { return &CardHandler{service: s} }

// Apply handles POST /api/cards.
func (h *CardHandler) Apply(c *fiber.Ctx) error {
	var req card.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	issued, err := h.service.ApplyCard(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "card issued",
		"data":    issued,
	})
}

// List handles GET /api/cards.
func (h *CardHandler) List(c *fiber.Ctx) error {
	cards, err := h.service.ListMyCards(c.Context(), username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "cards", cards)
}

// Activate handles POST /api/cards/:id/activate.
func (h *CardHandler) Activate(c *fiber.Ctx) error {
	return lifecycle(c, h.service.ActivateCard, "card activated")
}

// Block handles POST /api/cards/:id/block.
func (h *CardHandler) Block(c *fiber.Ctx) error {
	return lifecycle(c, h.service.BlockCard, "card blocked")
}

// Unblock handles POST /api/cards/:id/unblock.
func (h *CardHandler) Unblock(c *fiber.Ctx) error {
	return lifecycle(c, h.service.UnblockCard, "card unblocked")
}

// SetInternational handles POST /api/cards/:id/international.
func (h *CardHandler) SetInternational(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return response.BadRequest(c, "invalid card id")
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	updated, err := h.service.SetInternationalUsage(c.Context(), id, req.Enabled, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "international usage updated", updated)
}

// AddCharge handles POST /api/cards/:id/charges.
func (h *CardHandler) AddCharge(c *fiber.Ctx) error {
	id, err := cardID(c)
	if err != nil {
		return response.BadRequest(c, "invalid card id")
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	updated, err := h.service.AddCharge(c.Context(), id, req.Amount, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "charge added", updated)
}

// PayBill handles POST /api/cards/pay-bill.
func (h *CardHandler) PayBill(c *fiber.Ctx) error {
	var req card.PayBillRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	result, err := h.service.PayCardBill(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "bill payment completed", result)
}

// Spend handles POST /api/cards/spend.
func (h *CardHandler) Spend(c *fiber.Ctx) error {
	var req card.SpendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	result, err := h.service.DebitCardSpend(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "purchase completed", result)
}

// lifecycle runs a single-card state transition endpoint.
func lifecycle(c *fiber.Ctx, op func(ctx context.Context, cardID uint, username string) (*models.Card, error), msg string) error {
	id, err := cardID(c)
	if err != nil {
		return response.BadRequest(c, "invalid card id")
	}

	updated, err := op(c.Context(), id, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, msg, updated)
}

func cardID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
