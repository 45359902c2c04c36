package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/school_ledgers/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type AllocateSchoolBudgetRequest struct {
	PartnerSchoolBudgetSchoolID       uuid.UUID  `json:"partner_school_budget_school_id" validate:"required"`
	PartnerSchoolBudgetAcademicYear   string     `json:"partner_school_budget_academic_year" validate:"required,min=4,max=16"`
	PartnerSchoolBudgetSourceBudgetID uuid.UUID  `json:"partner_school_budget_source_budget_id" validate:"required"`
	AmountIDR                         int64      `json:"amount_idr" validate:"required,gt=0"`
	PartnerSchoolBudgetExpiryDate     *time.Time `json:"partner_school_budget_expiry_date,omitempty"`
}

type AdjustAllocationRequest struct {
	NewAmountIDR int64   `json:"new_amount_idr" validate:"gte=0"`
	Note         *string `json:"note,omitempty"`
}

type RefundRequest struct {
	AmountIDR int64 `json:"amount_idr" validate:"required,gt=0"`
}

type RecordWithdrawalRequest struct {
	AmountIDR                   int64      `json:"amount_idr" validate:"required,gt=0"`
	WithdrawalPurpose           string     `json:"withdrawal_purpose" validate:"required,min=3"`
	WithdrawalProofDocumentPath string     `json:"withdrawal_proof_document_path" validate:"required"`
	WithdrawalDate              *time.Time `json:"withdrawal_date,omitempty"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type PartnerSchoolBudgetResponse struct {
	PartnerSchoolBudgetID              uuid.UUID  `json:"partner_school_budget_id"`
	PartnerSchoolBudgetSchoolID        uuid.UUID  `json:"partner_school_budget_school_id"`
	PartnerSchoolBudgetAcademicYear    string     `json:"partner_school_budget_academic_year"`
	PartnerSchoolBudgetSourceBudgetID  *uuid.UUID `json:"partner_school_budget_source_budget_id,omitempty"`
	PartnerSchoolBudgetAllocatedIDR    int64      `json:"partner_school_budget_allocated_idr"`
	PartnerSchoolBudgetDisbursedIDR    int64      `json:"partner_school_budget_disbursed_idr"`
	AvailableIDR                       int64      `json:"available_idr"`
	PartnerSchoolBudgetStatus          string     `json:"partner_school_budget_status"`
	PartnerSchoolBudgetAllocationDate  time.Time  `json:"partner_school_budget_allocation_date"`
	PartnerSchoolBudgetExpiryDate      *time.Time `json:"partner_school_budget_expiry_date,omitempty"`
	PartnerSchoolBudgetAdjustmentNotes []string   `json:"partner_school_budget_adjustment_notes,omitempty"`
}

func ToPartnerSchoolBudgetResponse(m *model.PartnerSchoolBudgetModel) PartnerSchoolBudgetResponse {
	return PartnerSchoolBudgetResponse{
		PartnerSchoolBudgetID:              m.PartnerSchoolBudgetID,
		PartnerSchoolBudgetSchoolID:        m.PartnerSchoolBudgetSchoolID,
		PartnerSchoolBudgetAcademicYear:    m.PartnerSchoolBudgetAcademicYear,
		PartnerSchoolBudgetSourceBudgetID:  m.PartnerSchoolBudgetSourceBudgetID,
		PartnerSchoolBudgetAllocatedIDR:    m.PartnerSchoolBudgetAllocatedIDR,
		PartnerSchoolBudgetDisbursedIDR:    m.PartnerSchoolBudgetDisbursedIDR,
		AvailableIDR:                       m.AvailableIDR(),
		PartnerSchoolBudgetStatus:          m.PartnerSchoolBudgetStatus,
		PartnerSchoolBudgetAllocationDate:  m.PartnerSchoolBudgetAllocationDate,
		PartnerSchoolBudgetExpiryDate:      m.PartnerSchoolBudgetExpiryDate,
		PartnerSchoolBudgetAdjustmentNotes: m.PartnerSchoolBudgetAdjustmentNotes,
	}
}

type WithdrawalResponse struct {
	WithdrawalID                    uuid.UUID `json:"withdrawal_id"`
	WithdrawalPartnerSchoolBudgetID uuid.UUID `json:"withdrawal_partner_school_budget_id"`
	WithdrawalAmountIDR             int64     `json:"withdrawal_amount_idr"`
	WithdrawalPurpose               string    `json:"withdrawal_purpose"`
	WithdrawalProofDocumentPath     string    `json:"withdrawal_proof_document_path"`
	WithdrawalDate                  time.Time `json:"withdrawal_date"`
	WithdrawalRecordedBy            uuid.UUID `json:"withdrawal_recorded_by"`
	WithdrawalCreatedAt             time.Time `json:"withdrawal_created_at"`
}

func ToWithdrawalResponse(m *model.WithdrawalModel) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:                    m.WithdrawalID,
		WithdrawalPartnerSchoolBudgetID: m.WithdrawalPartnerSchoolBudgetID,
		WithdrawalAmountIDR:             m.WithdrawalAmountIDR,
		WithdrawalPurpose:               m.WithdrawalPurpose,
		WithdrawalProofDocumentPath:     m.WithdrawalProofDocumentPath,
		WithdrawalDate:                  m.WithdrawalDate,
		WithdrawalRecordedBy:            m.WithdrawalRecordedBy,
		WithdrawalCreatedAt:             m.WithdrawalCreatedAt,
	}
}
