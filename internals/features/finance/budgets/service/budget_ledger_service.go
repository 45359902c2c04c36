// file: internals/features/finance/budgets/service/budget_ledger_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danasiswa_backend/internals/features/finance/budgets/model"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   BudgetLedger: operasi envelope (fund / reserve / settle).

   Konvensi: fungsi *Tx menerima tx yang SUDAH dibuka caller
   dan mengambil row lock sendiri. Multi-row mutation selalu
   satu transaction boundary (lihat school_ledgers).
========================================================= */

// LockEnvelopeTx mengambil envelope FOR UPDATE di dalam tx caller.
func LockEnvelopeTx(tx *gorm.DB, envelopeID uuid.UUID) (*model.BudgetAllocationModel, error) {
	var env model.BudgetAllocationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("budget_allocation_id = ?", envelopeID).
		First(&env).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ferrors.ErrStaleReference
		}
		return nil, err
	}
	return &env, nil
}

// SettleTx: disbursed_budget += amount pada envelope (locked), guard remaining.
func SettleTx(tx *gorm.DB, envelopeID uuid.UUID, amount int64) (*model.BudgetAllocationModel, error) {
	env, err := LockEnvelopeTx(tx, envelopeID)
	if err != nil {
		return nil, err
	}
	if err := env.ApplySettle(amount); err != nil {
		return nil, err
	}
	if err := tx.Save(env).Error; err != nil {
		return nil, err
	}
	return env, nil
}

// UnsettleTx: kebalikan SettleTx (refund).
func UnsettleTx(tx *gorm.DB, envelopeID uuid.UUID, amount int64) (*model.BudgetAllocationModel, error) {
	env, err := LockEnvelopeTx(tx, envelopeID)
	if err != nil {
		return nil, err
	}
	if err := env.ApplyUnsettle(amount); err != nil {
		return nil, err
	}
	if err := tx.Save(env).Error; err != nil {
		return nil, err
	}
	return env, nil
}

// ReserveTx: allocated_budget += amount (komitmen pra-pencairan).
func ReserveTx(tx *gorm.DB, envelopeID uuid.UUID, amount int64) (*model.BudgetAllocationModel, error) {
	env, err := LockEnvelopeTx(tx, envelopeID)
	if err != nil {
		return nil, err
	}
	if err := env.ApplyReserve(amount); err != nil {
		return nil, err
	}
	if err := tx.Save(env).Error; err != nil {
		return nil, err
	}
	return env, nil
}

// ReleaseReservationTx: allocated_budget -= amount (revert-on-cancel).
func ReleaseReservationTx(tx *gorm.DB, envelopeID uuid.UUID, amount int64) (*model.BudgetAllocationModel, error) {
	env, err := LockEnvelopeTx(tx, envelopeID)
	if err != nil {
		return nil, err
	}
	if err := env.ApplyReleaseReservation(amount); err != nil {
		return nil, err
	}
	if err := tx.Save(env).Error; err != nil {
		return nil, err
	}
	return env, nil
}

/* =========================================================
   Service (dipegang controller)
========================================================= */

type BudgetLedgerService struct {
	DB *gorm.DB
}

func NewBudgetLedgerService(db *gorm.DB) *BudgetLedgerService {
	return &BudgetLedgerService{DB: db}
}

// Fund: buat envelope baru untuk (type, year) atau top-up yang sudah ada.
func (s *BudgetLedgerService) Fund(ctx context.Context, budgetType, schoolYear string, amount int64) (*model.BudgetAllocationModel, error) {
	var out *model.BudgetAllocationModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var env model.BudgetAllocationModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("budget_allocation_budget_type = ? AND budget_allocation_school_year = ?", budgetType, schoolYear).
			First(&env).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			env = model.BudgetAllocationModel{
				BudgetAllocationBudgetType: budgetType,
				BudgetAllocationSchoolYear: schoolYear,
				BudgetAllocationIsActive:   true,
			}
			if aerr := env.ApplyFund(amount); aerr != nil {
				return aerr
			}
			if cerr := tx.Create(&env).Error; cerr != nil {
				return cerr
			}
		case err != nil:
			return err
		default:
			if aerr := env.ApplyFund(amount); aerr != nil {
				return aerr
			}
			if serr := tx.Save(&env).Error; serr != nil {
				return serr
			}
		}

		out = &env
		return nil
	})
	return out, err
}

// SetTotalBudget: koreksi total (tidak boleh di bawah disbursed).
func (s *BudgetLedgerService) SetTotalBudget(ctx context.Context, envelopeID uuid.UUID, total int64) (*model.BudgetAllocationModel, error) {
	var out *model.BudgetAllocationModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := LockEnvelopeTx(tx, envelopeID)
		if err != nil {
			return err
		}
		if err := env.ApplySetTotal(total); err != nil {
			return err
		}
		if err := tx.Save(env).Error; err != nil {
			return err
		}
		out = env
		return nil
	})
	return out, err
}

func (s *BudgetLedgerService) Get(ctx context.Context, envelopeID uuid.UUID) (*model.BudgetAllocationModel, error) {
	var env model.BudgetAllocationModel
	if err := s.DB.WithContext(ctx).
		Where("budget_allocation_id = ?", envelopeID).
		First(&env).Error; err != nil {
		return nil, err
	}
	return &env, nil
}

func (s *BudgetLedgerService) List(ctx context.Context, schoolYear string, offset, limit int) ([]model.BudgetAllocationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.BudgetAllocationModel{})
	if schoolYear != "" {
		q = q.Where("budget_allocation_school_year = ?", schoolYear)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.BudgetAllocationModel
	if err := q.
		Order("budget_allocation_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
