// file: internals/features/finance/fund_requests/service/fund_request_workflow.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danasiswa_backend/internals/features/finance/fund_requests/model"
	ledgerService "danasiswa_backend/internals/features/finance/school_ledgers/service"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   FundRequestWorkflow
   approve = otorisasi (tanpa pindah uang);
   disburse = deduct sub-ledger + transisi, satu tx —
   gagal deduct berarti request TETAP approved.
========================================================= */

type FundRequestService struct {
	DB      *gorm.DB
	Ledgers *ledgerService.SchoolLedgerService
}

func NewFundRequestService(db *gorm.DB) *FundRequestService {
	return &FundRequestService{
		DB:      db,
		Ledgers: ledgerService.NewSchoolLedgerService(db),
	}
}

func lockRequestTx(tx *gorm.DB, requestID uuid.UUID) (*model.FundRequestModel, error) {
	var fr model.FundRequestModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fund_request_id = ?", requestID).
		First(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

func (s *FundRequestService) Create(ctx context.Context, ledgerID uuid.UUID, amount int64, purpose string, docPath *string) (*model.FundRequestModel, error) {
	// Sub-ledger harus ada; availability baru dicek saat approve.
	if _, err := s.Ledgers.Get(ctx, ledgerID); err != nil {
		return nil, err
	}

	fr := model.FundRequestModel{
		FundRequestPartnerSchoolBudgetID: ledgerID,
		FundRequestAmountIDR:             amount,
		FundRequestPurpose:               purpose,
		FundRequestStatus:                model.FundRequestStatusPending,
		FundRequestDocumentPath:          docPath,
	}
	if err := s.DB.WithContext(ctx).Create(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

// Approve: butuh hasFunds pada sub-ledger, tapi tidak memotong apa pun.
func (s *FundRequestService) Approve(ctx context.Context, requestID, by uuid.UUID) (*model.FundRequestModel, error) {
	var out *model.FundRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fr, err := lockRequestTx(tx, requestID)
		if err != nil {
			return err
		}

		sub, err := ledgerService.LockLedgerTx(tx, fr.FundRequestPartnerSchoolBudgetID)
		if err != nil {
			return err
		}
		if !sub.HasFunds(fr.FundRequestAmountIDR) {
			return ferrors.ErrInsufficientFunds
		}

		if err := fr.ApplyApprove(by, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(fr).Error; err != nil {
			return err
		}
		out = fr
		return nil
	})
	return out, err
}

// Reject: terminal business outcome, bukan exception.
func (s *FundRequestService) Reject(ctx context.Context, requestID, by uuid.UUID) (*model.FundRequestModel, error) {
	var out *model.FundRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fr, err := lockRequestTx(tx, requestID)
		if err != nil {
			return err
		}
		if err := fr.ApplyReject(by, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(fr).Error; err != nil {
			return err
		}
		out = fr
		return nil
	})
	return out, err
}

// Disburse: uang keluar dari sub-ledger. Deduct + transisi dalam
// satu tx; kalau deduct gagal seluruh tx rollback dan status
// tetap approved (tidak ada transisi parsial).
func (s *FundRequestService) Disburse(ctx context.Context, requestID, by uuid.UUID) (*model.FundRequestModel, error) {
	var out *model.FundRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fr, err := lockRequestTx(tx, requestID)
		if err != nil {
			return err
		}
		if !fr.CanTransition(model.FundRequestStatusDisbursed) {
			return ferrors.ErrInvalidTransition
		}

		if _, err := s.Ledgers.DeductTx(tx, fr.FundRequestPartnerSchoolBudgetID, fr.FundRequestAmountIDR); err != nil {
			return err
		}

		if err := fr.ApplyDisburse(by, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(fr).Error; err != nil {
			return err
		}
		out = fr
		return nil
	})
	return out, err
}

// Liquidate: lampirkan bukti belanja, tutup request. Tanpa efek ledger.
func (s *FundRequestService) Liquidate(ctx context.Context, requestID uuid.UUID, proofPath string) (*model.FundRequestModel, error) {
	var out *model.FundRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fr, err := lockRequestTx(tx, requestID)
		if err != nil {
			return err
		}
		if err := fr.ApplyLiquidate(proofPath); err != nil {
			return err
		}
		if err := tx.Save(fr).Error; err != nil {
			return err
		}
		out = fr
		return nil
	})
	return out, err
}

func (s *FundRequestService) Get(ctx context.Context, requestID uuid.UUID) (*model.FundRequestModel, error) {
	var fr model.FundRequestModel
	if err := s.DB.WithContext(ctx).
		Where("fund_request_id = ?", requestID).
		First(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

func (s *FundRequestService) List(ctx context.Context, ledgerID *uuid.UUID, status string, offset, limit int) ([]model.FundRequestModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.FundRequestModel{})
	if ledgerID != nil {
		q = q.Where("fund_request_partner_school_budget_id = ?", *ledgerID)
	}
	if status != "" {
		q = q.Where("fund_request_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.FundRequestModel
	if err := q.
		Order("fund_request_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
