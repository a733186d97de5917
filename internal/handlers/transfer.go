package handlers

import (
	"bankapp/internal/services/transfer"
	"bankapp/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes IMPS and NEFT transfer endpoints.
type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// IMPS handles POST /api/transfers/imps.
func (h *TransferHandler) IMPS(c *fiber.Ctx) error {
	var req transfer.Request
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	result, err := h.service.IMPS(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "transfer completed", result)
}

// NEFT handles POST /api/transfers/neft.
func (h *TransferHandler) NEFT(c *fiber.Ctx) error {
	var req transfer.Request
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	result, err := h.service.NEFT(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "transfer queued", result)
}

// GetByReference handles GET /api/transfers/:reference.
func (h *TransferHandler) GetByReference(c *fiber.Ctx) error {
	record, err := h.service.GetByReference(c.Context(), c.Params("reference"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "transaction", record)
}
