package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM partner_school_budget_status di PostgreSQL */

const (
	SchoolBudgetStatusActive   = "active"
	SchoolBudgetStatusExpired  = "expired"
	SchoolBudgetStatusDepleted = "depleted"
)

/* ===================== Model ===================== */

// PartnerSchoolBudgetModel = sub-ledger per (school_id, academic_year),
// carve-out dari satu budget envelope.
//
// source_budget_id sengaja nullable (SET NULL saat parent di-soft-delete):
// sub-ledger adalah record keuangan dan TIDAK pernah dihapus.
type PartnerSchoolBudgetModel struct {
	PartnerSchoolBudgetID uuid.UUID `gorm:"column:partner_school_budget_id;type:uuid;default:gen_random_uuid();primaryKey" json:"partner_school_budget_id"`

	PartnerSchoolBudgetSchoolID     uuid.UUID `gorm:"column:partner_school_budget_school_id;type:uuid;not null;uniqueIndex:uq_school_year" json:"partner_school_budget_school_id"`
	PartnerSchoolBudgetAcademicYear string    `gorm:"column:partner_school_budget_academic_year;type:varchar(16);not null;uniqueIndex:uq_school_year" json:"partner_school_budget_academic_year"`

	// Weak reference ke envelope. NULL = parent sudah dihapus (stale).
	PartnerSchoolBudgetSourceBudgetID *uuid.UUID `gorm:"column:partner_school_budget_source_budget_id;type:uuid;index" json:"partner_school_budget_source_budget_id,omitempty"`

	PartnerSchoolBudgetAllocatedIDR int64 `gorm:"column:partner_school_budget_allocated_idr;not null;default:0;check:partner_school_budget_allocated_idr >= 0" json:"partner_school_budget_allocated_idr"`
	PartnerSchoolBudgetDisbursedIDR int64 `gorm:"column:partner_school_budget_disbursed_idr;not null;default:0;check:partner_school_budget_disbursed_idr >= 0" json:"partner_school_budget_disbursed_idr"`

	PartnerSchoolBudgetStatus string `gorm:"column:partner_school_budget_status;type:partner_school_budget_status;not null;default:'active'" json:"partner_school_budget_status"`

	PartnerSchoolBudgetAllocationDate time.Time  `gorm:"column:partner_school_budget_allocation_date;not null" json:"partner_school_budget_allocation_date"`
	PartnerSchoolBudgetExpiryDate     *time.Time `gorm:"column:partner_school_budget_expiry_date" json:"partner_school_budget_expiry_date,omitempty"`

	// Running log catatan penyesuaian alokasi (append-only).
	PartnerSchoolBudgetAdjustmentNotes pq.StringArray `gorm:"column:partner_school_budget_adjustment_notes;type:text[]" json:"partner_school_budget_adjustment_notes,omitempty"`

	PartnerSchoolBudgetCreatedAt time.Time `gorm:"column:partner_school_budget_created_at;autoCreateTime" json:"partner_school_budget_created_at"`
	PartnerSchoolBudgetUpdatedAt time.Time `gorm:"column:partner_school_budget_updated_at;autoUpdateTime" json:"partner_school_budget_updated_at"`
}

func (PartnerSchoolBudgetModel) TableName() string { return "partner_school_budgets" }

/* ===================== Ledger ops ===================== */

// AvailableIDR = allocated - disbursed. Satu-satunya definisi "dana tersedia".
func (m *PartnerSchoolBudgetModel) AvailableIDR() int64 {
	return m.PartnerSchoolBudgetAllocatedIDR - m.PartnerSchoolBudgetDisbursedIDR
}

// HasFunds: cek availability sebelum approve/deduct.
func (m *PartnerSchoolBudgetModel) HasFunds(amount int64) bool {
	return amount > 0 && m.AvailableIDR() >= amount
}

// RecomputeStatus menghitung ulang status murni dari available & expiry.
// depleted wajib saat available <= 0; balik ke active kalau positif lagi.
func (m *PartnerSchoolBudgetModel) RecomputeStatus(now time.Time) {
	if m.AvailableIDR() <= 0 {
		m.PartnerSchoolBudgetStatus = SchoolBudgetStatusDepleted
		return
	}
	if m.PartnerSchoolBudgetExpiryDate != nil && now.After(*m.PartnerSchoolBudgetExpiryDate) {
		m.PartnerSchoolBudgetStatus = SchoolBudgetStatusExpired
		return
	}
	m.PartnerSchoolBudgetStatus = SchoolBudgetStatusActive
}

// ApplyDeduct: disbursed += amount. Ditolak kalau melebihi available —
// row tidak berubah sama sekali saat gagal.
func (m *PartnerSchoolBudgetModel) ApplyDeduct(amount int64, now time.Time) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	if amount > m.AvailableIDR() {
		return ferrors.ErrInsufficientFunds
	}
	m.PartnerSchoolBudgetDisbursedIDR += amount
	m.RecomputeStatus(now)
	return nil
}

// ApplyRefund: kebalikan deduct. disbursed tidak boleh negatif.
// Status depleted otomatis balik active kalau available positif lagi.
func (m *PartnerSchoolBudgetModel) ApplyRefund(amount int64, now time.Time) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	if amount > m.PartnerSchoolBudgetDisbursedIDR {
		return ferrors.ErrInvalidAmount
	}
	m.PartnerSchoolBudgetDisbursedIDR -= amount
	m.RecomputeStatus(now)
	return nil
}

// ApplyAllocationAdjust me-reset allocated_amount dan append catatan.
// Tidak menyentuh disbursed ataupun parent envelope.
func (m *PartnerSchoolBudgetModel) ApplyAllocationAdjust(newAmount int64, note *string, now time.Time) error {
	if newAmount < 0 {
		return ferrors.ErrInvalidAmount
	}
	m.PartnerSchoolBudgetAllocatedIDR = newAmount
	if note != nil && *note != "" {
		m.PartnerSchoolBudgetAdjustmentNotes = append(m.PartnerSchoolBudgetAdjustmentNotes, *note)
	}
	m.RecomputeStatus(now)
	return nil
}
