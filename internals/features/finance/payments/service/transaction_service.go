// file: internals/features/finance/payments/service/transaction_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danasiswa_backend/internals/features/finance/payments/model"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   PaymentTransactionService

   Satu transaction = satu attempt pencairan ke provider.
   Reference unik (unique index) jadi OrderID Midtrans sekaligus
   idempotency key webhook.
========================================================= */

type PaymentTransactionService struct {
	DB *gorm.DB
}

func NewPaymentTransactionService(db *gorm.DB) *PaymentTransactionService {
	return &PaymentTransactionService{DB: db}
}

// LockTransactionByReferenceTx: ambil transaksi FOR UPDATE by reference
// (jalur webhook). NotFound diterjemahkan ke ErrStaleReference supaya
// caller bisa membedakan "reference tidak dikenal" dari error DB.
func LockTransactionByReferenceTx(tx *gorm.DB, reference string) (*model.PaymentTransactionModel, error) {
	var txn model.PaymentTransactionModel
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_transaction_reference = ?", reference).
		First(&txn).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ferrors.ErrStaleReference
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// LockTransactionTx: ambil transaksi FOR UPDATE by id.
func LockTransactionTx(tx *gorm.DB, id uuid.UUID) (*model.PaymentTransactionModel, error) {
	var txn model.PaymentTransactionModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_transaction_id = ?", id).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

type OpenTransactionInput struct {
	ApplicationID uuid.UUID
	AmountIDR     int64
	Provider      string // midtrans | manual
	Method        string // gateway | bank_transfer | cash | check
	TTL           time.Duration
}

// OpenTx membuat transaksi pending baru di dalam tx caller.
func (s *PaymentTransactionService) OpenTx(tx *gorm.DB, in OpenTransactionInput) (*model.PaymentTransactionModel, error) {
	if in.AmountIDR <= 0 {
		return nil, ferrors.ErrInvalidAmount
	}

	now := time.Now()
	txn := model.PaymentTransactionModel{
		PaymentTransactionReference:     GenTransactionReference("AID"),
		PaymentTransactionApplicationID: in.ApplicationID,
		PaymentTransactionProvider:      in.Provider,
		PaymentTransactionMethod:        in.Method,
		PaymentTransactionAmountIDR:     in.AmountIDR,
		PaymentTransactionStatus:        model.TransactionStatusPending,
		PaymentTransactionInitiatedAt:   now,
	}
	if in.TTL > 0 {
		exp := now.Add(in.TTL)
		txn.PaymentTransactionExpiresAt = &exp
	}

	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// CancelOpen membatalkan transaksi yang masih pending/processing
// (admin membatalkan pencairan sebelum provider settle). Aplikasi
// ikut dikembalikan ke approved + reservation dilepas.
func (s *PaymentTransactionService) CancelOpen(ctx context.Context, id uuid.UUID) (*model.PaymentTransactionModel, error) {
	var out *model.PaymentTransactionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := LockTransactionTx(tx, id)
		if err != nil {
			return err
		}
		if err := txn.MarkCancelled(); err != nil {
			return err
		}
		if err := tx.Save(txn).Error; err != nil {
			return err
		}
		if err := revertGrantTx(tx, txn); err != nil {
			return err
		}
		out = txn
		return nil
	})
	return out, err
}

func (s *PaymentTransactionService) Get(ctx context.Context, id uuid.UUID) (*model.PaymentTransactionModel, error) {
	var txn model.PaymentTransactionModel
	if err := s.DB.WithContext(ctx).
		Where("payment_transaction_id = ?", id).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *PaymentTransactionService) FindByReference(ctx context.Context, reference string) (*model.PaymentTransactionModel, error) {
	var txn model.PaymentTransactionModel
	if err := s.DB.WithContext(ctx).
		Where("payment_transaction_reference = ?", reference).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *PaymentTransactionService) List(ctx context.Context, applicationID *uuid.UUID, status string, offset, limit int) ([]model.PaymentTransactionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.PaymentTransactionModel{})
	if applicationID != nil {
		q = q.Where("payment_transaction_application_id = ?", *applicationID)
	}
	if status != "" {
		q = q.Where("payment_transaction_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PaymentTransactionModel
	if err := q.
		Order("payment_transaction_initiated_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListExpiredOpen: transaksi open yang sudah lewat expires_at —
// dipakai sweeper reconciliation.
func (s *PaymentTransactionService) ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]model.PaymentTransactionModel, error) {
	var rows []model.PaymentTransactionModel
	err := s.DB.WithContext(ctx).
		Where("payment_transaction_status IN ?", []string{model.TransactionStatusPending, model.TransactionStatusProcessing}).
		Where("payment_transaction_expires_at IS NOT NULL AND payment_transaction_expires_at < ?", now).
		Order("payment_transaction_expires_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
