// file: internals/features/finance/school_ledgers/service/withdrawal_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/school_ledgers/model"
)

/* =========================================================
   WithdrawalRecorder: append-only. Tidak ada update/delete —
   koreksi = refund kompensasi + record baru, riwayat utuh.
========================================================= */

type WithdrawalService struct {
	DB      *gorm.DB
	Ledgers *SchoolLedgerService
}

func NewWithdrawalService(db *gorm.DB) *WithdrawalService {
	return &WithdrawalService{DB: db, Ledgers: NewSchoolLedgerService(db)}
}

type RecordWithdrawalInput struct {
	LedgerID   uuid.UUID
	AmountIDR  int64
	Purpose    string
	ProofPath  string
	Date       time.Time
	RecordedBy uuid.UUID
}

// Record memotong sub-ledger lalu insert row withdrawal dalam satu tx.
// Deduct-nya sendiri sudah memvalidasi availability (INSUFFICIENT_FUNDS).
func (s *WithdrawalService) Record(ctx context.Context, in RecordWithdrawalInput) (*model.WithdrawalModel, error) {
	var out *model.WithdrawalModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Ledgers.DeductTx(tx, in.LedgerID, in.AmountIDR); err != nil {
			return err
		}

		w := model.WithdrawalModel{
			WithdrawalPartnerSchoolBudgetID: in.LedgerID,
			WithdrawalAmountIDR:             in.AmountIDR,
			WithdrawalPurpose:               in.Purpose,
			WithdrawalProofDocumentPath:     in.ProofPath,
			WithdrawalDate:                  in.Date,
			WithdrawalRecordedBy:            in.RecordedBy,
		}
		if err := tx.Create(&w).Error; err != nil {
			return err
		}

		out = &w
		return nil
	})
	return out, err
}

func (s *WithdrawalService) ListByLedger(ctx context.Context, ledgerID uuid.UUID, offset, limit int) ([]model.WithdrawalModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.WithdrawalModel{}).
		Where("withdrawal_partner_school_budget_id = ?", ledgerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.WithdrawalModel
	if err := q.
		Order("withdrawal_date DESC, withdrawal_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
