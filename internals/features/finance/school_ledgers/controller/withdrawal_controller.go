// file: internals/features/finance/school_ledgers/controller/withdrawal_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/school_ledgers/dto"
	"danasiswa_backend/internals/features/finance/school_ledgers/service"
	helper "danasiswa_backend/internals/helpers"
)

type WithdrawalController struct {
	DB       *gorm.DB
	Service  *service.WithdrawalService
	Validate *validator.Validate
}

func NewWithdrawalController(db *gorm.DB) *WithdrawalController {
	return &WithdrawalController{
		DB:       db,
		Service:  service.NewWithdrawalService(db),
		Validate: validator.New(),
	}
}

// POST /api/a/school-aid/school-budgets/:id/withdrawals
func (h *WithdrawalController) RecordWithdrawal(c *fiber.Ctx) error {
	ledgerID, err := parseLedgerID(c)
	if err != nil {
		return err
	}

	recordedBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RecordWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date := time.Now()
	if req.WithdrawalDate != nil {
		date = *req.WithdrawalDate
	}

	w, err := h.Service.Record(c.UserContext(), service.RecordWithdrawalInput{
		LedgerID:   ledgerID,
		AmountIDR:  req.AmountIDR,
		Purpose:    req.WithdrawalPurpose,
		ProofPath:  req.WithdrawalProofDocumentPath,
		Date:       date,
		RecordedBy: recordedBy,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sub-ledger tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Penarikan dicatat", dto.ToWithdrawalResponse(w))
}

// GET /api/a/school-aid/school-budgets/:id/withdrawals
func (h *WithdrawalController) ListWithdrawals(c *fiber.Ctx) error {
	ledgerID, err := parseLedgerID(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Service.ListByLedger(c.UserContext(), ledgerID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penarikan")
	}

	resp := make([]dto.WithdrawalResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToWithdrawalResponse(&rows[i]))
	}
	return helper.JsonList(c, "", resp, helper.BuildPagination(paging, total))
}
