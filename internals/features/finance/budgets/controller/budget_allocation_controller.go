// file: internals/features/finance/budgets/controller/budget_allocation_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/budgets/dto"
	"danasiswa_backend/internals/features/finance/budgets/service"
	helper "danasiswa_backend/internals/helpers"
)

type BudgetAllocationController struct {
	DB       *gorm.DB
	Service  *service.BudgetLedgerService
	Validate *validator.Validate
}

func NewBudgetAllocationController(db *gorm.DB) *BudgetAllocationController {
	return &BudgetAllocationController{
		DB:       db,
		Service:  service.NewBudgetLedgerService(db),
		Validate: validator.New(),
	}
}

// POST /api/a/school-aid/budget
func (h *BudgetAllocationController) FundBudget(c *fiber.Ctx) error {
	var req dto.FundBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	req.BudgetAllocationSchoolYear = strings.TrimSpace(req.BudgetAllocationSchoolYear)

	env, err := h.Service.Fund(c.UserContext(), req.BudgetAllocationBudgetType, req.BudgetAllocationSchoolYear, req.AmountIDR)
	if err != nil {
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Budget envelope didanai", dto.ToBudgetAllocationResponse(env))
}

// PATCH /api/a/school-aid/budgets/:id/total
func (h *BudgetAllocationController) SetTotalBudget(c *fiber.Ctx) error {
	envelopeID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "budget id tidak valid")
	}

	var req dto.SetTotalBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	env, err := h.Service.SetTotalBudget(c.UserContext(), envelopeID, req.TotalIDR)
	if err != nil {
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Total budget dikoreksi", dto.ToBudgetAllocationResponse(env))
}

// GET /api/a/school-aid/budgets
func (h *BudgetAllocationController) ListBudgets(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	year := strings.TrimSpace(c.Query("school_year"))

	rows, total, err := h.Service.List(c.UserContext(), year, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data budget")
	}

	resp := make([]dto.BudgetAllocationResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToBudgetAllocationResponse(&rows[i]))
	}
	return helper.JsonList(c, "", resp, helper.BuildPagination(paging, total))
}

// GET /api/a/school-aid/budgets/:id
func (h *BudgetAllocationController) GetBudget(c *fiber.Ctx) error {
	envelopeID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "budget id tidak valid")
	}

	env, err := h.Service.Get(c.UserContext(), envelopeID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Budget tidak ditemukan")
	}
	return helper.JsonOK(c, "", dto.ToBudgetAllocationResponse(env))
}
