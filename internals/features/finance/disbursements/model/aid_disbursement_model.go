// file: internals/features/finance/disbursements/model/aid_disbursement_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */

const (
	DisbursementStatusCompleted = "completed"
	DisbursementStatusReversed  = "reversed"
)

/* ===================== Model ===================== */

/*
  aid_disbursements = catatan final "dana sudah keluar".
  - Row baru dibuat hanya saat settle sukses; tidak pernah ada
    row pending di tabel ini.
  - Unique index di payment_transaction_id (nullable, jalur manual
    tanpa transaksi provider) mengunci 1 transaksi = max 1 disbursement.
*/

type AidDisbursementModel struct {
	AidDisbursementID uuid.UUID `gorm:"column:aid_disbursement_id;type:uuid;default:gen_random_uuid();primaryKey" json:"aid_disbursement_id"`

	AidDisbursementApplicationID        uuid.UUID  `gorm:"column:aid_disbursement_application_id;type:uuid;not null;index" json:"aid_disbursement_application_id"`
	AidDisbursementPaymentTransactionID *uuid.UUID `gorm:"column:aid_disbursement_payment_transaction_id;type:uuid;uniqueIndex:uq_disbursement_txn,where:aid_disbursement_payment_transaction_id IS NOT NULL" json:"aid_disbursement_payment_transaction_id,omitempty"`

	// Sumber dana yang dipotong (salin dari aplikasi saat settle,
	// supaya receipt tetap utuh walau aplikasi berubah).
	AidDisbursementPartnerSchoolBudgetID *uuid.UUID `gorm:"column:aid_disbursement_partner_school_budget_id;type:uuid;index" json:"aid_disbursement_partner_school_budget_id,omitempty"`
	AidDisbursementBudgetAllocationID    *uuid.UUID `gorm:"column:aid_disbursement_budget_allocation_id;type:uuid;index" json:"aid_disbursement_budget_allocation_id,omitempty"`

	AidDisbursementAmountIDR int64  `gorm:"column:aid_disbursement_amount_idr;not null;check:aid_disbursement_amount_idr > 0" json:"aid_disbursement_amount_idr"`
	AidDisbursementProvider  string `gorm:"column:aid_disbursement_provider;type:varchar(32);not null" json:"aid_disbursement_provider"`
	AidDisbursementMethod    string `gorm:"column:aid_disbursement_method;type:varchar(32);not null" json:"aid_disbursement_method"`
	AidDisbursementReference string `gorm:"column:aid_disbursement_reference;type:varchar(64);not null" json:"aid_disbursement_reference"`

	// Salinan rekening tujuan saat pencairan (snapshot, bukan FK).
	AidDisbursementRecipientAccount *string `gorm:"column:aid_disbursement_recipient_account;type:varchar(64)" json:"aid_disbursement_recipient_account,omitempty"`
	AidDisbursementReceiptPath      *string `gorm:"column:aid_disbursement_receipt_path;type:text" json:"aid_disbursement_receipt_path,omitempty"`

	AidDisbursementStatus string `gorm:"column:aid_disbursement_status;type:varchar(16);not null;default:'completed'" json:"aid_disbursement_status"`

	AidDisbursementDisbursedAt time.Time  `gorm:"column:aid_disbursement_disbursed_at;not null" json:"aid_disbursement_disbursed_at"`
	AidDisbursementDisbursedBy *uuid.UUID `gorm:"column:aid_disbursement_disbursed_by;type:uuid" json:"aid_disbursement_disbursed_by,omitempty"`
	AidDisbursementReversedAt  *time.Time `gorm:"column:aid_disbursement_reversed_at" json:"aid_disbursement_reversed_at,omitempty"`

	AidDisbursementCreatedAt time.Time `gorm:"column:aid_disbursement_created_at;autoCreateTime" json:"aid_disbursement_created_at"`
	AidDisbursementUpdatedAt time.Time `gorm:"column:aid_disbursement_updated_at;autoUpdateTime" json:"aid_disbursement_updated_at"`
}

func (AidDisbursementModel) TableName() string { return "aid_disbursements" }

/* ===================== Transitions ===================== */

// ApplyReverse: completed → reversed (refund dari provider).
func (m *AidDisbursementModel) ApplyReverse(at time.Time) error {
	if m.AidDisbursementStatus != DisbursementStatusCompleted {
		return ferrors.ErrInvalidTransition
	}
	m.AidDisbursementStatus = DisbursementStatusReversed
	m.AidDisbursementReversedAt = &at
	return nil
}
