package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */

const (
	BudgetTypeScholarship = "scholarship"
	BudgetTypeSchoolAid   = "school_aid"
	BudgetTypeOperational = "operational"
)

/* ===================== Model ===================== */

// BudgetAllocationModel = budget envelope per (budget_type, school_year).
// total/allocated/disbursed adalah running totals (IDR).
// Soft delete saja — record keuangan tidak pernah dihapus keras.
type BudgetAllocationModel struct {
	BudgetAllocationID uuid.UUID `gorm:"column:budget_allocation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"budget_allocation_id"`

	BudgetAllocationBudgetType string `gorm:"column:budget_allocation_budget_type;type:varchar(32);not null;uniqueIndex:uq_budget_type_year,where:budget_allocation_deleted_at IS NULL" json:"budget_allocation_budget_type"`
	BudgetAllocationSchoolYear string `gorm:"column:budget_allocation_school_year;type:varchar(16);not null;uniqueIndex:uq_budget_type_year,where:budget_allocation_deleted_at IS NULL" json:"budget_allocation_school_year"`

	BudgetAllocationTotalIDR     int64 `gorm:"column:budget_allocation_total_idr;not null;default:0;check:budget_allocation_total_idr >= 0" json:"budget_allocation_total_idr"`
	BudgetAllocationAllocatedIDR int64 `gorm:"column:budget_allocation_allocated_idr;not null;default:0;check:budget_allocation_allocated_idr >= 0" json:"budget_allocation_allocated_idr"`
	BudgetAllocationDisbursedIDR int64 `gorm:"column:budget_allocation_disbursed_idr;not null;default:0;check:budget_allocation_disbursed_idr >= 0" json:"budget_allocation_disbursed_idr"`

	BudgetAllocationIsActive bool `gorm:"column:budget_allocation_is_active;not null;default:true" json:"budget_allocation_is_active"`

	BudgetAllocationCreatedAt time.Time      `gorm:"column:budget_allocation_created_at;autoCreateTime" json:"budget_allocation_created_at"`
	BudgetAllocationUpdatedAt time.Time      `gorm:"column:budget_allocation_updated_at;autoUpdateTime" json:"budget_allocation_updated_at"`
	BudgetAllocationDeletedAt gorm.DeletedAt `gorm:"column:budget_allocation_deleted_at;index" json:"budget_allocation_deleted_at,omitempty"`
}

func (BudgetAllocationModel) TableName() string { return "budget_allocations" }

/* ===================== Ledger ops ===================== */
/* Semua mutasi envelope lewat method di bawah ini; controller/service
   tidak boleh utak-atik kolom total langsung. */

// RemainingIDR = total - disbursed (dana yang masih bisa keluar).
func (m *BudgetAllocationModel) RemainingIDR() int64 {
	return m.BudgetAllocationTotalIDR - m.BudgetAllocationDisbursedIDR
}

// ApplyFund menambah total_budget (pendanaan baru dari administrator).
func (m *BudgetAllocationModel) ApplyFund(amount int64) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	m.BudgetAllocationTotalIDR += amount
	return nil
}

// ApplySetTotal koreksi eksplisit total_budget.
// Total tidak boleh turun di bawah dana yang sudah keluar.
func (m *BudgetAllocationModel) ApplySetTotal(total int64) error {
	if total < 0 {
		return ferrors.ErrInvalidAmount
	}
	if total < m.BudgetAllocationDisbursedIDR {
		return ferrors.ErrInsufficientFunds
	}
	m.BudgetAllocationTotalIDR = total
	return nil
}

// ApplyReserve: komitmen pra-pencairan (allocated_budget naik).
func (m *BudgetAllocationModel) ApplyReserve(amount int64) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	m.BudgetAllocationAllocatedIDR += amount
	return nil
}

// ApplyReleaseReservation: kebalikan reserve (revert-on-cancel).
func (m *BudgetAllocationModel) ApplyReleaseReservation(amount int64) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	if amount > m.BudgetAllocationAllocatedIDR {
		return ferrors.ErrInvalidAmount
	}
	m.BudgetAllocationAllocatedIDR -= amount
	return nil
}

// ApplySettle: dana benar-benar keluar. remaining tidak boleh negatif.
func (m *BudgetAllocationModel) ApplySettle(amount int64) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	if amount > m.RemainingIDR() {
		return ferrors.ErrInsufficientFunds
	}
	m.BudgetAllocationDisbursedIDR += amount
	return nil
}

// ApplyUnsettle: kebalikan settle (refund transaksi yang sudah keluar).
// Tidak boleh membuat disbursed negatif.
func (m *BudgetAllocationModel) ApplyUnsettle(amount int64) error {
	if amount <= 0 {
		return ferrors.ErrInvalidAmount
	}
	if amount > m.BudgetAllocationDisbursedIDR {
		return ferrors.ErrInvalidAmount
	}
	m.BudgetAllocationDisbursedIDR -= amount
	return nil
}
