package handlers

import (
	"strconv"
	"time"

	"bankapp/internal/services/deposit"
	"bankapp/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// DepositHandler exposes fixed and recurring deposit endpoints.
type DepositHandler struct {
	service deposit.Service
}

func NewDepositHandler(s deposit.Service) *DepositHandler { return &DepositHandler{service: s} }

// CreateFD handles POST /api/deposits/fd.
func (h *DepositHandler) CreateFD(c *fiber.Ctx) error {
	var req deposit.CreateFDRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	fd, err := h.service.CreateFD(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "fixed deposit created",
		"data":    fd,
	})
}

// CreateRD handles POST /api/deposits/rd.
func (h *DepositHandler) CreateRD(c *fiber.Ctx) error {
	var req deposit.CreateRDRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	rd, err := h.service.CreateRD(c.Context(), req, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "recurring deposit created",
		"data":    rd,
	})
}

// ListFDs handles GET /api/deposits/fd.
func (h *DepositHandler) ListFDs(c *fiber.Ctx) error {
	fds, err := h.service.ListMyFDs(c.Context(), username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "fixed deposits", fds)
}

// ListRDs handles GET /api/deposits/rd.
func (h *DepositHandler) ListRDs(c *fiber.Ctx) error {
	rds, err := h.service.ListMyRDs(c.Context(), username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "recurring deposits", rds)
}

// GetFD handles GET /api/deposits/fd/:id.
func (h *DepositHandler) GetFD(c *fiber.Ctx) error {
	id, err := depositID(c)
	if err != nil {
		return response.BadRequest(c, "invalid deposit id")
	}

	fd, err := h.service.GetFD(c.Context(), id, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "fixed deposit", fd)
}

// GetRD handles GET /api/deposits/rd/:id.
func (h *DepositHandler) GetRD(c *fiber.Ctx) error {
	id, err := depositID(c)
	if err != nil {
		return response.BadRequest(c, "invalid deposit id")
	}

	rd, err := h.service.GetRD(c.Context(), id, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "recurring deposit", rd)
}

// CancelFD handles POST /api/deposits/fd/:id/cancel.
func (h *DepositHandler) CancelFD(c *fiber.Ctx) error {
	id, err := depositID(c)
	if err != nil {
		return response.BadRequest(c, "invalid deposit id")
	}

	fd, err := h.service.CancelFD(c.Context(), id, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "fixed deposit cancelled", fd)
}

// CancelRD handles POST /api/deposits/rd/:id/cancel.
func (h *DepositHandler) CancelRD(c *fiber.Ctx) error {
	id, err := depositID(c)
	if err != nil {
		return response.BadRequest(c, "invalid deposit id")
	}

	rd, err := h.service.CancelRD(c.Context(), id, username(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "recurring deposit cancelled", rd)
}

// RunMaturities handles POST /api/deposits/maturities/run. Admin-only
// manual trigger for the sweep the scheduler runs nightly.
func (h *DepositHandler) RunMaturities(c *fiber.Ctx) error {
	report, err := h.service.ProcessMaturities(c.Context(), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "maturity sweep completed", report)
}

func depositID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
