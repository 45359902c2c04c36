package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/budgets/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// FundBudgetRequest: buat envelope baru atau top-up total_budget
// untuk (budget_type, school_year) yang sudah ada.
type FundBudgetRequest struct {
	BudgetAllocationBudgetType string `json:"budget_allocation_budget_type" validate:"required,oneof=scholarship school_aid operational"`
	BudgetAllocationSchoolYear string `json:"budget_allocation_school_year" validate:"required,min=4,max=16"`
	AmountIDR                  int64  `json:"amount_idr" validate:"required,gt=0"`
}

// SetTotalBudgetRequest: koreksi eksplisit total envelope.
type SetTotalBudgetRequest struct {
	TotalIDR int64 `json:"total_idr" validate:"gte=0"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type BudgetAllocationResponse struct {
	BudgetAllocationID           uuid.UUID `json:"budget_allocation_id"`
	BudgetAllocationBudgetType   string    `json:"budget_allocation_budget_type"`
	BudgetAllocationSchoolYear   string    `json:"budget_allocation_school_year"`
	BudgetAllocationTotalIDR     int64     `json:"budget_allocation_total_idr"`
	BudgetAllocationAllocatedIDR int64     `json:"budget_allocation_allocated_idr"`
	BudgetAllocationDisbursedIDR int64     `json:"budget_allocation_disbursed_idr"`
	RemainingIDR                 int64     `json:"remaining_idr"`
	BudgetAllocationIsActive     bool      `json:"budget_allocation_is_active"`
	BudgetAllocationCreatedAt    time.Time `json:"budget_allocation_created_at"`
	BudgetAllocationUpdatedAt    time.Time `json:"budget_allocation_updated_at"`
}

func ToBudgetAllocationResponse(m *model.BudgetAllocationModel) BudgetAllocationResponse {
	return BudgetAllocationResponse{
		BudgetAllocationID:           m.BudgetAllocationID,
		BudgetAllocationBudgetType:   m.BudgetAllocationBudgetType,
		BudgetAllocationSchoolYear:   m.BudgetAllocationSchoolYear,
		BudgetAllocationTotalIDR:     m.BudgetAllocationTotalIDR,
		BudgetAllocationAllocatedIDR: m.BudgetAllocationAllocatedIDR,
		BudgetAllocationDisbursedIDR: m.BudgetAllocationDisbursedIDR,
		RemainingIDR:                 m.RemainingIDR(),
		BudgetAllocationIsActive:     m.BudgetAllocationIsActive,
		BudgetAllocationCreatedAt:    m.BudgetAllocationCreatedAt,
		BudgetAllocationUpdatedAt:    m.BudgetAllocationUpdatedAt,
	}
}
