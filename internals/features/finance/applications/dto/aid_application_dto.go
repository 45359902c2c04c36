// file: internals/features/finance/applications/dto/aid_application_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/applications/model"
	paymentDto "danasiswa_backend/internals/features/finance/payments/dto"
)

/* ===================== Request ===================== */

type CreateAidApplicationRequest struct {
	StudentName           string     `json:"student_name" validate:"required,min=3,max=128"`
	SchoolID              uuid.UUID  `json:"school_id" validate:"required"`
	SchoolYear            string     `json:"school_year" validate:"required,min=4,max=16"`
	AmountIDR             int64      `json:"amount_idr" validate:"required,gt=0"`
	PartnerSchoolBudgetID *uuid.UUID `json:"partner_school_budget_id"`
	BudgetAllocationID    *uuid.UUID `json:"budget_allocation_id"`
}

type ProcessGrantRequest struct {
	BeneficiaryFirstName string `json:"beneficiary_first_name" validate:"required,min=2,max=64"`
	BeneficiaryLastName  string `json:"beneficiary_last_name" validate:"omitempty,max=64"`
	BeneficiaryEmail     string `json:"beneficiary_email" validate:"required,email"`
	BeneficiaryPhone     string `json:"beneficiary_phone" validate:"omitempty,max=24"`
}

/* ===================== Response ===================== */

type AidApplicationResponse struct {
	AidApplicationID                    uuid.UUID  `json:"aid_application_id"`
	AidApplicationStudentName           string     `json:"aid_application_student_name"`
	AidApplicationSchoolID              uuid.UUID  `json:"aid_application_school_id"`
	AidApplicationSchoolYear            string     `json:"aid_application_school_year"`
	AidApplicationPartnerSchoolBudgetID *uuid.UUID `json:"aid_application_partner_school_budget_id,omitempty"`
	AidApplicationBudgetAllocationID    *uuid.UUID `json:"aid_application_budget_allocation_id,omitempty"`
	AidApplicationAmountIDR             int64      `json:"aid_application_amount_idr"`
	AidApplicationStatus                string     `json:"aid_application_status"`
	AidApplicationCreatedAt             time.Time  `json:"aid_application_created_at"`
}

func ToAidApplicationResponse(m *model.AidApplicationModel) AidApplicationResponse {
	return AidApplicationResponse{
		AidApplicationID:                    m.AidApplicationID,
		AidApplicationStudentName:           m.AidApplicationStudentName,
		AidApplicationSchoolID:              m.AidApplicationSchoolID,
		AidApplicationSchoolYear:            m.AidApplicationSchoolYear,
		AidApplicationPartnerSchoolBudgetID: m.AidApplicationPartnerSchoolBudgetID,
		AidApplicationBudgetAllocationID:    m.AidApplicationBudgetAllocationID,
		AidApplicationAmountIDR:             m.AidApplicationAmountIDR,
		AidApplicationStatus:                m.AidApplicationStatus,
		AidApplicationCreatedAt:             m.AidApplicationCreatedAt,
	}
}

type ProcessGrantResponse struct {
	Application AidApplicationResponse                `json:"application"`
	Transaction paymentDto.PaymentTransactionResponse `json:"transaction"`
	SnapToken   string                                `json:"snap_token"`
	RedirectURL string                                `json:"redirect_url"`
}
