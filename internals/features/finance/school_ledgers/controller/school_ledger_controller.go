// file: internals/features/finance/school_ledgers/controller/school_ledger_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/school_ledgers/dto"
	"danasiswa_backend/internals/features/finance/school_ledgers/service"
	"danasiswa_backend/internals/ferrors"
	helper "danasiswa_backend/internals/helpers"
)

type SchoolLedgerController struct {
	DB       *gorm.DB
	Service  *service.SchoolLedgerService
	Validate *validator.Validate
}

func NewSchoolLedgerController(db *gorm.DB) *SchoolLedgerController {
	return &SchoolLedgerController{
		DB:       db,
		Service:  service.NewSchoolLedgerService(db),
		Validate: validator.New(),
	}
}

func parseLedgerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "sub-ledger id tidak valid")
	}
	return id, nil
}

// POST /api/a/school-aid/school-budgets
func (h *SchoolLedgerController) AllocateSchoolBudget(c *fiber.Ctx) error {
	var req dto.AllocateSchoolBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sub, err := h.Service.Allocate(
		c.UserContext(),
		req.PartnerSchoolBudgetSchoolID,
		strings.TrimSpace(req.PartnerSchoolBudgetAcademicYear),
		req.PartnerSchoolBudgetSourceBudgetID,
		req.AmountIDR,
		req.PartnerSchoolBudgetExpiryDate,
	)
	if err != nil {
		if ferrors.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Sub-ledger untuk sekolah & tahun ajaran ini sudah ada")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Alokasi sekolah dibuat", dto.ToPartnerSchoolBudgetResponse(sub))
}

// PATCH /api/a/school-aid/school-budgets/:id/allocation
func (h *SchoolLedgerController) AdjustAllocation(c *fiber.Ctx) error {
	ledgerID, err := parseLedgerID(c)
	if err != nil {
		return err
	}

	var req dto.AdjustAllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sub, err := h.Service.AdjustAllocation(c.UserContext(), ledgerID, req.NewAmountIDR, req.Note)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sub-ledger tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Alokasi disesuaikan", dto.ToPartnerSchoolBudgetResponse(sub))
}

// POST /api/a/school-aid/school-budgets/:id/refund
// Refund manual (kompensasi) — id mengacu ke sub-ledger.
func (h *SchoolLedgerController) Refund(c *fiber.Ctx) error {
	ledgerID, err := parseLedgerID(c)
	if err != nil {
		return err
	}

	var req dto.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sub, err := h.Service.Refund(c.UserContext(), ledgerID, req.AmountIDR)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sub-ledger tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Refund diterapkan", dto.ToPartnerSchoolBudgetResponse(sub))
}

// GET /api/a/school-aid/school-budgets
func (h *SchoolLedgerController) ListSchoolBudgets(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var schoolID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("school_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
		}
		schoolID = &id
	}

	rows, total, err := h.Service.List(c.UserContext(), schoolID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data sub-ledger")
	}

	resp := make([]dto.PartnerSchoolBudgetResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToPartnerSchoolBudgetResponse(&rows[i]))
	}
	return helper.JsonList(c, "", resp, helper.BuildPagination(paging, total))
}

// GET /api/a/school-aid/school-budgets/:id
func (h *SchoolLedgerController) GetSchoolBudget(c *fiber.Ctx) error {
	ledgerID, err := parseLedgerID(c)
	if err != nil {
		return err
	}

	sub, err := h.Service.Get(c.UserContext(), ledgerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Sub-ledger tidak ditemukan")
	}
	return helper.JsonOK(c, "", dto.ToPartnerSchoolBudgetResponse(sub))
}
