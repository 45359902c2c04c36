// file: internals/features/finance/payments/controller/webhook_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"danasiswa_backend/internals/features/finance/payments/dto"
	"danasiswa_backend/internals/features/finance/payments/service"
	"danasiswa_backend/internals/ferrors"
	helper "danasiswa_backend/internals/helpers"
)

type WebhookController struct {
	Service *service.WebhookService
}

func NewWebhookController(svc *service.WebhookService) *WebhookController {
	return &WebhookController{Service: svc}
}

// POST /webhooks/midtrans
// Midtrans me-retry selama response bukan 2xx:
//   - 401 signature mismatch (jangan percaya payload),
//   - 404 order_id tidak dikenal (retry percuma),
//   - 200 untuk processed/duplicate/ignored,
//   - 500 untuk kegagalan sementara (DB down dsb) supaya di-retry.
func (h *WebhookController) HandleMidtrans(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if n.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id wajib diisi")
	}

	// Body mentah disalin — Fiber reuse buffer antar request.
	raw := make([]byte, len(c.Body()))
	copy(raw, c.Body())

	outcome, err := h.Service.HandleMidtrans(c.UserContext(), n, raw)
	switch {
	case errors.Is(err, ferrors.ErrInvalidSignature):
		return helper.JsonError(c, fiber.StatusUnauthorized, "signature tidak valid")
	case errors.Is(err, ferrors.ErrStaleReference):
		return helper.JsonError(c, fiber.StatusNotFound, "order tidak dikenal")
	case err != nil:
		log.Printf("[WEBHOOK][ERROR] order %s: %v", n.OrderID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal memproses notifikasi")
	}

	return helper.JsonOK(c, "notifikasi diterima", fiber.Map{
		"order_id": n.OrderID,
		"outcome":  outcome,
	})
}
