// file: internals/features/finance/payments/controller/payment_transaction_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/payments/dto"
	"danasiswa_backend/internals/features/finance/payments/service"
	helper "danasiswa_backend/internals/helpers"
)

type PaymentTransactionController struct {
	DB       *gorm.DB
	Service  *service.PaymentTransactionService
	Webhooks *service.WebhookService
	Validate *validator.Validate
}

func NewPaymentTransactionController(db *gorm.DB, webhooks *service.WebhookService) *PaymentTransactionController {
	return &PaymentTransactionController{
		DB:       db,
		Service:  service.NewPaymentTransactionService(db),
		Webhooks: webhooks,
		Validate: validator.New(),
	}
}

// GET /api/a/school-aid/transactions
func (h *PaymentTransactionController) ListTransactions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	status := strings.TrimSpace(c.Query("status"))

	var appID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("application_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "application_id tidak valid")
		}
		appID = &id
	}

	rows, total, err := h.Service.List(c.UserContext(), appID, status, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data transaksi")
	}

	items := make([]dto.PaymentTransactionResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToPaymentTransactionResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar transaksi", items, helper.BuildPagination(paging, total))
}

// GET /api/a/school-aid/transactions/:id
func (h *PaymentTransactionController) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "transaction id tidak valid")
	}

	txn, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}
	return helper.JsonOK(c, "Detail transaksi", dto.ToPaymentTransactionResponse(txn))
}

// POST /api/a/school-aid/transactions/:id/cancel
func (h *PaymentTransactionController) CancelTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "transaction id tidak valid")
	}

	txn, err := h.Service.CancelOpen(c.UserContext(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Transaksi dibatalkan", dto.ToPaymentTransactionResponse(txn))
}

// GET /api/a/school-aid/gateway-events
func (h *PaymentTransactionController) ListGatewayEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	reference := strings.TrimSpace(c.Query("reference"))

	rows, total, err := h.Webhooks.ListEvents(c.UserContext(), reference, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data event")
	}

	items := make([]dto.GatewayEventResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToGatewayEventResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar gateway event", items, helper.BuildPagination(paging, total))
}
