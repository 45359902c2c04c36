// file: internals/features/finance/school_ledgers/service/school_ledger_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	budgetService "danasiswa_backend/internals/features/finance/budgets/service"
	"danasiswa_backend/internals/features/finance/school_ledgers/model"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   PartnerSchoolSubLedger

   deduct/refund menyentuh DUA row ledger (sub-ledger + parent
   envelope) — selalu dalam SATU transaction, dengan row lock
   FOR UPDATE. Urutan lock tetap: sub-ledger dulu, baru parent,
   supaya dua deduct yang balapan di sub-ledger yang sama
   terserialisasi dan tidak saling deadlock.
========================================================= */

type SchoolLedgerService struct {
	DB *gorm.DB
}

func NewSchoolLedgerService(db *gorm.DB) *SchoolLedgerService {
	return &SchoolLedgerService{DB: db}
}

// LockLedgerTx mengambil sub-ledger FOR UPDATE di dalam tx caller.
func LockLedgerTx(tx *gorm.DB, ledgerID uuid.UUID) (*model.PartnerSchoolBudgetModel, error) {
	var sub model.PartnerSchoolBudgetModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("partner_school_budget_id = ?", ledgerID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeductTx: potong sub-ledger + cascade settle ke parent envelope.
// Dipanggil dari dalam tx caller (withdrawal, fund request, finalizer).
// Gagal di langkah manapun = seluruh tx di-rollback oleh caller.
func (s *SchoolLedgerService) DeductTx(tx *gorm.DB, ledgerID uuid.UUID, amount int64) (*model.PartnerSchoolBudgetModel, error) {
	now := time.Now()

	sub, err := LockLedgerTx(tx, ledgerID)
	if err != nil {
		return nil, err
	}
	if err := sub.ApplyDeduct(amount, now); err != nil {
		return nil, err
	}
	if err := tx.Save(sub).Error; err != nil {
		return nil, err
	}

	if sub.PartnerSchoolBudgetSourceBudgetID == nil {
		// Parent envelope sudah dihapus — sub-ledger tetap jalan,
		// cascade dilewati. Reconciliation manual yang beresin.
		log.Printf("[LEDGER][WARN] STALE_REFERENCE: sub-ledger %s tanpa source budget, cascade dilewati", ledgerID)
		return sub, nil
	}

	if _, err := budgetService.SettleTx(tx, *sub.PartnerSchoolBudgetSourceBudgetID, amount); err != nil {
		return nil, err
	}
	return sub, nil
}

// RefundTx: kebalikan DeductTx — kembalikan dana ke sub-ledger
// dan kurangi disbursed parent. Satu unit atomik dengan caller.
func (s *SchoolLedgerService) RefundTx(tx *gorm.DB, ledgerID uuid.UUID, amount int64) (*model.PartnerSchoolBudgetModel, error) {
	now := time.Now()

	sub, err := LockLedgerTx(tx, ledgerID)
	if err != nil {
		return nil, err
	}
	if err := sub.ApplyRefund(amount, now); err != nil {
		return nil, err
	}
	if err := tx.Save(sub).Error; err != nil {
		return nil, err
	}

	if sub.PartnerSchoolBudgetSourceBudgetID == nil {
		log.Printf("[LEDGER][WARN] STALE_REFERENCE: sub-ledger %s tanpa source budget, cascade dilewati", ledgerID)
		return sub, nil
	}

	if _, err := budgetService.UnsettleTx(tx, *sub.PartnerSchoolBudgetSourceBudgetID, amount); err != nil {
		return nil, err
	}
	return sub, nil
}

// Deduct membuka transaction sendiri (entry point langsung dari controller).
func (s *SchoolLedgerService) Deduct(ctx context.Context, ledgerID uuid.UUID, amount int64) (*model.PartnerSchoolBudgetModel, error) {
	var out *model.PartnerSchoolBudgetModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.DeductTx(tx, ledgerID, amount)
		if err != nil {
			return err
		}
		out = sub
		return nil
	})
	return out, err
}

// Refund membuka transaction sendiri.
func (s *SchoolLedgerService) Refund(ctx context.Context, ledgerID uuid.UUID, amount int64) (*model.PartnerSchoolBudgetModel, error) {
	var out *model.PartnerSchoolBudgetModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.RefundTx(tx, ledgerID, amount)
		if err != nil {
			return err
		}
		out = sub
		return nil
	})
	return out, err
}

// Allocate membuat sub-ledger baru, carve-out dari envelope:
// allocated envelope naik sebesar alokasi sekolah.
func (s *SchoolLedgerService) Allocate(ctx context.Context, schoolID uuid.UUID, academicYear string, sourceBudgetID uuid.UUID, amount int64, expiryDate *time.Time) (*model.PartnerSchoolBudgetModel, error) {
	if amount <= 0 {
		return nil, ferrors.ErrInvalidAmount
	}

	var out *model.PartnerSchoolBudgetModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := budgetService.LockEnvelopeTx(tx, sourceBudgetID)
		if err != nil {
			return err
		}
		if err := env.ApplyReserve(amount); err != nil {
			return err
		}
		if err := tx.Save(env).Error; err != nil {
			return err
		}

		sub := model.PartnerSchoolBudgetModel{
			PartnerSchoolBudgetSchoolID:       schoolID,
			PartnerSchoolBudgetAcademicYear:   academicYear,
			PartnerSchoolBudgetSourceBudgetID: &env.BudgetAllocationID,
			PartnerSchoolBudgetAllocatedIDR:   amount,
			PartnerSchoolBudgetStatus:         model.SchoolBudgetStatusActive,
			PartnerSchoolBudgetAllocationDate: time.Now(),
			PartnerSchoolBudgetExpiryDate:     expiryDate,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		out = &sub
		return nil
	})
	return out, err
}

// AdjustAllocation me-reset allocated sub-ledger + append catatan.
// Sesuai kontrak: TIDAK menyentuh disbursed maupun parent envelope.
func (s *SchoolLedgerService) AdjustAllocation(ctx context.Context, ledgerID uuid.UUID, newAmount int64, note *string) (*model.PartnerSchoolBudgetModel, error) {
	var out *model.PartnerSchoolBudgetModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := LockLedgerTx(tx, ledgerID)
		if err != nil {
			return err
		}
		if err := sub.ApplyAllocationAdjust(newAmount, note, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		out = sub
		return nil
	})
	return out, err
}

func (s *SchoolLedgerService) Get(ctx context.Context, ledgerID uuid.UUID) (*model.PartnerSchoolBudgetModel, error) {
	var sub model.PartnerSchoolBudgetModel
	if err := s.DB.WithContext(ctx).
		Where("partner_school_budget_id = ?", ledgerID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindBySchoolYear untuk resolusi sub-ledger dari aplikasi.
func (s *SchoolLedgerService) FindBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*model.PartnerSchoolBudgetModel, error) {
	var sub model.PartnerSchoolBudgetModel
	err := s.DB.WithContext(ctx).
		Where("partner_school_budget_school_id = ? AND partner_school_budget_academic_year = ?", schoolID, academicYear).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SchoolLedgerService) List(ctx context.Context, schoolID *uuid.UUID, offset, limit int) ([]model.PartnerSchoolBudgetModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.PartnerSchoolBudgetModel{})
	if schoolID != nil {
		q = q.Where("partner_school_budget_school_id = ?", *schoolID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PartnerSchoolBudgetModel
	if err := q.
		Order("partner_school_budget_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
