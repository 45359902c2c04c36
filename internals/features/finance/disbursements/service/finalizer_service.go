// file: internals/features/finance/disbursements/service/finalizer_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "danasiswa_backend/internals/features/finance/applications/model"
	budgetService "danasiswa_backend/internals/features/finance/budgets/service"
	"danasiswa_backend/internals/features/finance/disbursements/model"
	paymentModel "danasiswa_backend/internals/features/finance/payments/model"
	schoolLedgerService "danasiswa_backend/internals/features/finance/school_ledgers/service"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   DisbursementFinalizer

   Titik tunggal yang mengubah "transaksi sukses" jadi catatan
   keuangan permanen: potong ledger sumber, tulis row
   aid_disbursements, stamp aplikasi grants_disbursed.
   Semua langkah dalam SATU transaction milik caller.

   Garansi at-most-one completed disbursement per aplikasi
   ditegakkan dua lapis: cek eksplisit di bawah row lock
   aplikasi, plus unique index payment_transaction_id.
========================================================= */

type FinalizerService struct {
	DB      *gorm.DB
	Ledgers *schoolLedgerService.SchoolLedgerService
}

func NewFinalizerService(db *gorm.DB, ledgers *schoolLedgerService.SchoolLedgerService) *FinalizerService {
	return &FinalizerService{DB: db, Ledgers: ledgers}
}

// LockApplicationTx: row lock aplikasi — serialisasi semua finalize /
// revert yang menyasar aplikasi yang sama.
func LockApplicationTx(tx *gorm.DB, appID uuid.UUID) (*appModel.AidApplicationModel, error) {
	var app appModel.AidApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("aid_application_id = ?", appID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// hasCompletedDisbursementTx: dipanggil setelah lock aplikasi dipegang.
func hasCompletedDisbursementTx(tx *gorm.DB, appID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.AidDisbursementModel{}).
		Where("aid_disbursement_application_id = ? AND aid_disbursement_status = ?",
			appID, model.DisbursementStatusCompleted).
		Count(&n).Error
	return n > 0, err
}

// settleSourceTx memotong sumber dana aplikasi.
// reserved=true kalau envelope sempat di-reserve saat grant dibuka
// (jalur gateway) — reservation dilepas bersamaan dengan settle.
func (s *FinalizerService) settleSourceTx(tx *gorm.DB, app *appModel.AidApplicationModel, amount int64, reserved bool) error {
	if app.AidApplicationPartnerSchoolBudgetID != nil {
		_, err := s.Ledgers.DeductTx(tx, *app.AidApplicationPartnerSchoolBudgetID, amount)
		return err
	}

	if app.AidApplicationBudgetAllocationID != nil {
		env, err := budgetService.LockEnvelopeTx(tx, *app.AidApplicationBudgetAllocationID)
		if err != nil {
			return err
		}
		if reserved {
			if err := env.ApplyReleaseReservation(amount); err != nil {
				return err
			}
		}
		if err := env.ApplySettle(amount); err != nil {
			return err
		}
		return tx.Save(env).Error
	}

	return ferrors.ErrStaleReference
}

// refundSourceTx: kebalikan settleSourceTx (reversal pasca-refund).
func (s *FinalizerService) refundSourceTx(tx *gorm.DB, d *model.AidDisbursementModel) error {
	if d.AidDisbursementPartnerSchoolBudgetID != nil {
		_, err := s.Ledgers.RefundTx(tx, *d.AidDisbursementPartnerSchoolBudgetID, d.AidDisbursementAmountIDR)
		return err
	}

	if d.AidDisbursementBudgetAllocationID != nil {
		_, err := budgetService.UnsettleTx(tx, *d.AidDisbursementBudgetAllocationID, d.AidDisbursementAmountIDR)
		return err
	}

	return ferrors.ErrStaleReference
}

// FinalizeFromTransactionTx: jalur webhook, dipanggil di dalam tx webhook
// setelah transaksi di-mark completed.
func (s *FinalizerService) FinalizeFromTransactionTx(tx *gorm.DB, txn *paymentModel.PaymentTransactionModel) (*model.AidDisbursementModel, error) {
	app, err := LockApplicationTx(tx, txn.PaymentTransactionApplicationID)
	if err != nil {
		return nil, err
	}

	dup, err := hasCompletedDisbursementTx(tx, app.AidApplicationID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ferrors.ErrDuplicateDisbursement
	}

	if err := s.settleSourceTx(tx, app, txn.PaymentTransactionAmountIDR, true); err != nil {
		return nil, err
	}

	now := time.Now()
	d := model.AidDisbursementModel{
		AidDisbursementApplicationID:         app.AidApplicationID,
		AidDisbursementPaymentTransactionID:  &txn.PaymentTransactionID,
		AidDisbursementPartnerSchoolBudgetID: app.AidApplicationPartnerSchoolBudgetID,
		AidDisbursementBudgetAllocationID:    app.AidApplicationBudgetAllocationID,
		AidDisbursementAmountIDR:             txn.PaymentTransactionAmountIDR,
		AidDisbursementProvider:              txn.PaymentTransactionProvider,
		AidDisbursementMethod:                txn.PaymentTransactionMethod,
		AidDisbursementReference:             txn.PaymentTransactionReference,
		AidDisbursementStatus:                model.DisbursementStatusCompleted,
		AidDisbursementDisbursedAt:           now,
	}
	if err := tx.Create(&d).Error; err != nil {
		if ferrors.IsUniqueViolation(err) {
			return nil, ferrors.ErrDuplicateDisbursement
		}
		return nil, err
	}

	if err := app.ApplyMarkDisbursed(); err != nil {
		return nil, err
	}
	if err := tx.Save(app).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

type ManualDisbursementInput struct {
	ApplicationID    uuid.UUID
	Method           string // bank_transfer | cash | check
	Reference        string
	RecipientAccount *string
	ReceiptPath      *string
	DisbursedBy      *uuid.UUID
}

// FinalizeManual: pencairan di luar gateway (transfer bank manual,
// tunai, cek). Tidak ada reservation sebelumnya.
func (s *FinalizerService) FinalizeManual(ctx context.Context, in ManualDisbursementInput) (*model.AidDisbursementModel, error) {
	var out *model.AidDisbursementModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := LockApplicationTx(tx, in.ApplicationID)
		if err != nil {
			return err
		}

		dup, err := hasCompletedDisbursementTx(tx, app.AidApplicationID)
		if err != nil {
			return err
		}
		if dup {
			return ferrors.ErrDuplicateDisbursement
		}

		if err := s.settleSourceTx(tx, app, app.AidApplicationAmountIDR, false); err != nil {
			return err
		}

		now := time.Now()
		d := model.AidDisbursementModel{
			AidDisbursementApplicationID:         app.AidApplicationID,
			AidDisbursementPartnerSchoolBudgetID: app.AidApplicationPartnerSchoolBudgetID,
			AidDisbursementBudgetAllocationID:    app.AidApplicationBudgetAllocationID,
			AidDisbursementAmountIDR:             app.AidApplicationAmountIDR,
			AidDisbursementProvider:              paymentModel.PaymentProviderManual,
			AidDisbursementMethod:                in.Method,
			AidDisbursementReference:             in.Reference,
			AidDisbursementRecipientAccount:      in.RecipientAccount,
			AidDisbursementReceiptPath:           in.ReceiptPath,
			AidDisbursementStatus:                model.DisbursementStatusCompleted,
			AidDisbursementDisbursedAt:           now,
			AidDisbursementDisbursedBy:           in.DisbursedBy,
		}
		if err := tx.Create(&d).Error; err != nil {
			if ferrors.IsUniqueViolation(err) {
				return ferrors.ErrDuplicateDisbursement
			}
			return err
		}

		if err := app.ApplyMarkDisbursed(); err != nil {
			return err
		}
		if err := tx.Save(app).Error; err != nil {
			return err
		}

		out = &d
		return nil
	})
	return out, err
}

// ReverseByTransactionTx: provider refund setelah settle — balikin dana
// ke sumber, mark disbursement reversed, aplikasi mundur ke approved.
func (s *FinalizerService) ReverseByTransactionTx(tx *gorm.DB, txn *paymentModel.PaymentTransactionModel) (*model.AidDisbursementModel, error) {
	app, err := LockApplicationTx(tx, txn.PaymentTransactionApplicationID)
	if err != nil {
		return nil, err
	}

	var d model.AidDisbursementModel
	err = tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("aid_disbursement_payment_transaction_id = ? AND aid_disbursement_status = ?",
			txn.PaymentTransactionID, model.DisbursementStatusCompleted).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ferrors.ErrStaleReference
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := d.ApplyReverse(now); err != nil {
		return nil, err
	}
	if err := tx.Save(&d).Error; err != nil {
		return nil, err
	}

	if err := s.refundSourceTx(tx, &d); err != nil {
		return nil, err
	}

	if err := app.ApplyReverseGrant(); err != nil {
		return nil, err
	}
	if err := tx.Save(app).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

/* ===================== Queries ===================== */

func (s *FinalizerService) Get(ctx context.Context, id uuid.UUID) (*model.AidDisbursementModel, error) {
	var d model.AidDisbursementModel
	if err := s.DB.WithContext(ctx).
		Where("aid_disbursement_id = ?", id).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *FinalizerService) List(ctx context.Context, applicationID *uuid.UUID, status string, offset, limit int) ([]model.AidDisbursementModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.AidDisbursementModel{})
	if applicationID != nil {
		q = q.Where("aid_disbursement_application_id = ?", *applicationID)
	}
	if status != "" {
		q = q.Where("aid_disbursement_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AidDisbursementModel
	if err := q.
		Order("aid_disbursement_disbursed_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
