// file: internals/features/finance/disbursements/dto/aid_disbursement_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/disbursements/model"
)

/* ===================== Request ===================== */

type ManualDisburseRequest struct {
	Method           string  `json:"method" validate:"required,oneof=bank_transfer cash check"`
	Reference        string  `json:"reference" validate:"required,min=3,max=64"`
	RecipientAccount *string `json:"recipient_account" validate:"omitempty,max=64"`
	ReceiptPath      *string `json:"receipt_path" validate:"omitempty,max=255"`
}

/* ===================== Response ===================== */

type AidDisbursementResponse struct {
	AidDisbursementID                    uuid.UUID  `json:"aid_disbursement_id"`
	AidDisbursementApplicationID         uuid.UUID  `json:"aid_disbursement_application_id"`
	AidDisbursementPaymentTransactionID  *uuid.UUID `json:"aid_disbursement_payment_transaction_id,omitempty"`
	AidDisbursementPartnerSchoolBudgetID *uuid.UUID `json:"aid_disbursement_partner_school_budget_id,omitempty"`
	AidDisbursementBudgetAllocationID    *uuid.UUID `json:"aid_disbursement_budget_allocation_id,omitempty"`
	AidDisbursementAmountIDR             int64      `json:"aid_disbursement_amount_idr"`
	AidDisbursementProvider              string     `json:"aid_disbursement_provider"`
	AidDisbursementMethod                string     `json:"aid_disbursement_method"`
	AidDisbursementReference             string     `json:"aid_disbursement_reference"`
	AidDisbursementRecipientAccount      *string    `json:"aid_disbursement_recipient_account,omitempty"`
	AidDisbursementStatus                string     `json:"aid_disbursement_status"`
	AidDisbursementDisbursedAt           time.Time  `json:"aid_disbursement_disbursed_at"`
	AidDisbursementDisbursedBy           *uuid.UUID `json:"aid_disbursement_disbursed_by,omitempty"`
	AidDisbursementReversedAt            *time.Time `json:"aid_disbursement_reversed_at,omitempty"`
}

func ToAidDisbursementResponse(m *model.AidDisbursementModel) AidDisbursementResponse {
	return AidDisbursementResponse{
		AidDisbursementID:                    m.AidDisbursementID,
		AidDisbursementApplicationID:         m.AidDisbursementApplicationID,
		AidDisbursementPaymentTransactionID:  m.AidDisbursementPaymentTransactionID,
		AidDisbursementPartnerSchoolBudgetID: m.AidDisbursementPartnerSchoolBudgetID,
		AidDisbursementBudgetAllocationID:    m.AidDisbursementBudgetAllocationID,
		AidDisbursementAmountIDR:             m.AidDisbursementAmountIDR,
		AidDisbursementProvider:              m.AidDisbursementProvider,
		AidDisbursementMethod:                m.AidDisbursementMethod,
		AidDisbursementReference:             m.AidDisbursementReference,
		AidDisbursementRecipientAccount:      m.AidDisbursementRecipientAccount,
		AidDisbursementStatus:                m.AidDisbursementStatus,
		AidDisbursementDisbursedAt:           m.AidDisbursementDisbursedAt,
		AidDisbursementDisbursedBy:           m.AidDisbursementDisbursedBy,
		AidDisbursementReversedAt:            m.AidDisbursementReversedAt,
	}
}

// ReceiptResponse = bukti pencairan untuk dicetak / ditampilkan.
type ReceiptResponse struct {
	ReceiptNumber    string     `json:"receipt_number"`
	ApplicationID    uuid.UUID  `json:"application_id"`
	AmountIDR        int64      `json:"amount_idr"`
	Provider         string     `json:"provider"`
	Method           string     `json:"method"`
	Reference        string     `json:"reference"`
	RecipientAccount *string    `json:"recipient_account,omitempty"`
	Status           string     `json:"status"`
	DisbursedAt      time.Time  `json:"disbursed_at"`
	ReversedAt       *time.Time `json:"reversed_at,omitempty"`
	ReceiptPath      *string    `json:"receipt_path,omitempty"`
}

func ToReceiptResponse(m *model.AidDisbursementModel) ReceiptResponse {
	return ReceiptResponse{
		ReceiptNumber:    "RCPT-" + m.AidDisbursementReference,
		ApplicationID:    m.AidDisbursementApplicationID,
		AmountIDR:        m.AidDisbursementAmountIDR,
		Provider:         m.AidDisbursementProvider,
		Method:           m.AidDisbursementMethod,
		Reference:        m.AidDisbursementReference,
		RecipientAccount: m.AidDisbursementRecipientAccount,
		Status:           m.AidDisbursementStatus,
		DisbursedAt:      m.AidDisbursementDisbursedAt,
		ReversedAt:       m.AidDisbursementReversedAt,
		ReceiptPath:      m.AidDisbursementReceiptPath,
	}
}
