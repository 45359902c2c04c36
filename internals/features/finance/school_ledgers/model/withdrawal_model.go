package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Model ===================== */

// WithdrawalModel = bukti penarikan yang SUDAH terjadi (append-only).
// Tidak ada kolom updated/deleted: koreksi lewat refund + record baru.
type WithdrawalModel struct {
	WithdrawalID uuid.UUID `gorm:"column:withdrawal_id;type:uuid;default:gen_random_uuid();primaryKey" json:"withdrawal_id"`

	WithdrawalPartnerSchoolBudgetID uuid.UUID `gorm:"column:withdrawal_partner_school_budget_id;type:uuid;not null;index" json:"withdrawal_partner_school_budget_id"`

	WithdrawalAmountIDR         int64     `gorm:"column:withdrawal_amount_idr;not null;check:withdrawal_amount_idr > 0" json:"withdrawal_amount_idr"`
	WithdrawalPurpose           string    `gorm:"column:withdrawal_purpose;type:text;not null" json:"withdrawal_purpose"`
	WithdrawalProofDocumentPath string    `gorm:"column:withdrawal_proof_document_path;type:text;not null" json:"withdrawal_proof_document_path"`
	WithdrawalDate              time.Time `gorm:"column:withdrawal_date;not null" json:"withdrawal_date"`
	WithdrawalRecordedBy        uuid.UUID `gorm:"column:withdrawal_recorded_by;type:uuid;not null" json:"withdrawal_recorded_by"`

	WithdrawalCreatedAt time.Time `gorm:"column:withdrawal_created_at;autoCreateTime" json:"withdrawal_created_at"`
}

func (WithdrawalModel) TableName() string { return "partner_school_budget_withdrawals" }
