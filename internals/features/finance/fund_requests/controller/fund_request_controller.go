// file: internals/features/finance/fund_requests/controller/fund_request_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/fund_requests/dto"
	"danasiswa_backend/internals/features/finance/fund_requests/model"
	"danasiswa_backend/internals/features/finance/fund_requests/service"
	"danasiswa_backend/internals/ferrors"
	helper "danasiswa_backend/internals/helpers"
)

type FundRequestController struct {
	DB       *gorm.DB
	Service  *service.FundRequestService
	Validate *validator.Validate
}

func NewFundRequestController(db *gorm.DB) *FundRequestController {
	return &FundRequestController{
		DB:       db,
		Service:  service.NewFundRequestService(db),
		Validate: validator.New(),
	}
}

func parseRequestID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "fund request id tidak valid")
	}
	return id, nil
}

// POST /api/a/school-aid/fund-requests
func (h *FundRequestController) CreateFundRequest(c *fiber.Ctx) error {
	var req dto.CreateFundRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fr, err := h.Service.Create(c.UserContext(), req.FundRequestPartnerSchoolBudgetID, req.FundRequestAmountIDR, strings.TrimSpace(req.FundRequestPurpose), req.FundRequestDocumentPath)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sub-ledger tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Fund request dibuat", dto.ToFundRequestResponse(fr))
}

// POST /api/a/school-aid/fund-requests/:id/approve
func (h *FundRequestController) Approve(c *fiber.Ctx) error {
	return h.process(c, h.Service.Approve, "Fund request disetujui", "insufficient school budget")
}

// POST /api/a/school-aid/fund-requests/:id/reject
func (h *FundRequestController) Reject(c *fiber.Ctx) error {
	return h.process(c, h.Service.Reject, "Fund request ditolak", "")
}

// POST /api/a/school-aid/fund-requests/:id/disburse
func (h *FundRequestController) Disburse(c *fiber.Ctx) error {
	return h.process(c, h.Service.Disburse, "Fund request dicairkan", "insufficient school budget")
}

// POST /api/a/school-aid/fund-requests/:id/liquidate
func (h *FundRequestController) Liquidate(c *fiber.Ctx) error {
	requestID, err := parseRequestID(c)
	if err != nil {
		return err
	}

	var req dto.LiquidateFundRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fr, err := h.Service.Liquidate(c.UserContext(), requestID, strings.TrimSpace(req.LiquidationDocumentPath))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fund request tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Fund request diliquidasi", dto.ToFundRequestResponse(fr))
}

// GET /api/a/school-aid/fund-requests
func (h *FundRequestController) ListFundRequests(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var ledgerID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("school_budget_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_budget_id tidak valid")
		}
		ledgerID = &id
	}
	status := strings.TrimSpace(c.Query("status"))

	rows, total, err := h.Service.List(c.UserContext(), ledgerID, status, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data fund request")
	}

	resp := make([]dto.FundRequestResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToFundRequestResponse(&rows[i]))
	}
	return helper.JsonList(c, "", resp, helper.BuildPagination(paging, total))
}

/* ===================== internal ===================== */

// process: pola umum approve/reject/disburse — ambil id + user dari
// token, panggil service, map error. insufficientMsg menggantikan
// pesan INSUFFICIENT_FUNDS default dengan alasan user-facing.
func (h *FundRequestController) process(
	c *fiber.Ctx,
	fn func(ctx context.Context, requestID, by uuid.UUID) (*model.FundRequestModel, error),
	okMsg string,
	insufficientMsg string,
) error {
	requestID, err := parseRequestID(c)
	if err != nil {
		return err
	}
	by, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fr, err := fn(c.UserContext(), requestID, by)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fund request tidak ditemukan")
		}
		if insufficientMsg != "" && errors.Is(err, ferrors.ErrInsufficientFunds) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, insufficientMsg)
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, okMsg, dto.ToFundRequestResponse(fr))
}
