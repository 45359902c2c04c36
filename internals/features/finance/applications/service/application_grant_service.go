// file: internals/features/finance/applications/service/application_grant_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/applications/model"
	budgetService "danasiswa_backend/internals/features/finance/budgets/service"
	disbursementModel "danasiswa_backend/internals/features/finance/disbursements/model"
	disbursementService "danasiswa_backend/internals/features/finance/disbursements/service"
	paymentModel "danasiswa_backend/internals/features/finance/payments/model"
	paymentService "danasiswa_backend/internals/features/finance/payments/service"
	schoolLedgerService "danasiswa_backend/internals/features/finance/school_ledgers/service"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   ApplicationGrantService

   Hanya irisan grant dari siklus aplikasi yang dimodelkan:
   approved → grants_processing → grants_disbursed, plus
   revert-on-cancel. ProcessGrant membuka payment transaction
   (gateway); jalur manual langsung ke finalizer.
========================================================= */

const defaultTransactionTTL = 24 * time.Hour

type ApplicationGrantService struct {
	DB           *gorm.DB
	Transactions *paymentService.PaymentTransactionService
	Finalizer    *disbursementService.FinalizerService
	Ledgers      *schoolLedgerService.SchoolLedgerService
}

func NewApplicationGrantService(db *gorm.DB) *ApplicationGrantService {
	ledgers := schoolLedgerService.NewSchoolLedgerService(db)
	return &ApplicationGrantService{
		DB:           db,
		Transactions: paymentService.NewPaymentTransactionService(db),
		Finalizer:    disbursementService.NewFinalizerService(db, ledgers),
		Ledgers:      ledgers,
	}
}

type CreateApplicationInput struct {
	StudentName           string
	SchoolID              uuid.UUID
	SchoolYear            string
	AmountIDR             int64
	PartnerSchoolBudgetID *uuid.UUID
	BudgetAllocationID    *uuid.UUID
}

// Create mendaftarkan aplikasi yang sudah approved ke pipeline grant.
// Tepat satu sumber dana yang boleh terisi.
func (s *ApplicationGrantService) Create(ctx context.Context, in CreateApplicationInput) (*model.AidApplicationModel, error) {
	if in.AmountIDR <= 0 {
		return nil, ferrors.ErrInvalidAmount
	}
	if (in.PartnerSchoolBudgetID == nil) == (in.BudgetAllocationID == nil) {
		return nil, ferrors.ErrStaleReference
	}

	app := model.AidApplicationModel{
		AidApplicationStudentName:           in.StudentName,
		AidApplicationSchoolID:              in.SchoolID,
		AidApplicationSchoolYear:            in.SchoolYear,
		AidApplicationPartnerSchoolBudgetID: in.PartnerSchoolBudgetID,
		AidApplicationBudgetAllocationID:    in.BudgetAllocationID,
		AidApplicationAmountIDR:             in.AmountIDR,
		AidApplicationStatus:                model.ApplicationStatusApproved,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Validasi sumber dana masih ada sebelum create.
		if in.PartnerSchoolBudgetID != nil {
			if _, err := schoolLedgerService.LockLedgerTx(tx, *in.PartnerSchoolBudgetID); err != nil {
				return err
			}
		} else {
			if _, err := budgetService.LockEnvelopeTx(tx, *in.BudgetAllocationID); err != nil {
				return err
			}
		}
		return tx.Create(&app).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

type ProcessGrantResult struct {
	Application *model.AidApplicationModel
	Transaction *paymentModel.PaymentTransactionModel
	SnapToken   string
	RedirectURL string
}

// ProcessGrant: approved → grants_processing + buka transaksi gateway.
// Jalur envelope langsung ikut me-reserve allocated (dilepas lagi saat
// settle atau revert). Sub-ledger partner TIDAK dipotong di sini —
// deduct terjadi di finalizer saat provider settle.
func (s *ApplicationGrantService) ProcessGrant(ctx context.Context, appID uuid.UUID, beneficiary paymentService.BeneficiaryInput) (*ProcessGrantResult, error) {
	var (
		app *model.AidApplicationModel
		txn *paymentModel.PaymentTransactionModel
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := disbursementService.LockApplicationTx(tx, appID)
		if err != nil {
			return err
		}

		switch {
		case locked.AidApplicationPartnerSchoolBudgetID != nil:
			sub, err := schoolLedgerService.LockLedgerTx(tx, *locked.AidApplicationPartnerSchoolBudgetID)
			if err != nil {
				return err
			}
			if !sub.HasFunds(locked.AidApplicationAmountIDR) {
				return ferrors.ErrInsufficientFunds
			}

		case locked.AidApplicationBudgetAllocationID != nil:
			env, err := budgetService.LockEnvelopeTx(tx, *locked.AidApplicationBudgetAllocationID)
			if err != nil {
				return err
			}
			if locked.AidApplicationAmountIDR > env.RemainingIDR() {
				return ferrors.ErrInsufficientFunds
			}
			if err := env.ApplyReserve(locked.AidApplicationAmountIDR); err != nil {
				return err
			}
			if err := tx.Save(env).Error; err != nil {
				return err
			}

		default:
			return ferrors.ErrStaleReference
		}

		if err := locked.ApplyProcessGrant(); err != nil {
			return err
		}
		if err := tx.Save(locked).Error; err != nil {
			return err
		}

		opened, err := s.Transactions.OpenTx(tx, paymentService.OpenTransactionInput{
			ApplicationID: locked.AidApplicationID,
			AmountIDR:     locked.AidApplicationAmountIDR,
			Provider:      paymentModel.PaymentProviderMidtrans,
			Method:        paymentModel.PaymentMethodGateway,
			TTL:           defaultTransactionTTL,
		})
		if err != nil {
			return err
		}

		app = locked
		txn = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Panggilan network ke Midtrans di luar DB transaction. Kalau
	// gagal, transaksi tetap pending — admin bisa cancel (atau
	// sweeper yang membereskan setelah expires_at).
	token, redirect, err := paymentService.GenerateSnapToken(txn, beneficiary)
	if err != nil {
		log.Printf("[GRANT][ERROR] snap token %s: %v", txn.PaymentTransactionReference, err)
		return nil, ferrors.ErrProviderError
	}

	return &ProcessGrantResult{
		Application: app,
		Transaction: txn,
		SnapToken:   token,
		RedirectURL: redirect,
	}, nil
}

// DisburseManual: pencairan tanpa gateway, langsung settle.
func (s *ApplicationGrantService) DisburseManual(ctx context.Context, in disbursementService.ManualDisbursementInput) (*disbursementModel.AidDisbursementModel, error) {
	return s.Finalizer.FinalizeManual(ctx, in)
}

// RevertOnCancel: admin membatalkan grant yang masih in-flight.
// Transaksi open ikut dibatalkan; aplikasi balik ke approved.
func (s *ApplicationGrantService) RevertOnCancel(ctx context.Context, appID uuid.UUID) (*model.AidApplicationModel, error) {
	var app *model.AidApplicationModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := disbursementService.LockApplicationTx(tx, appID)
		if err != nil {
			return err
		}
		if locked.AidApplicationStatus != model.ApplicationStatusGrantsProcessing {
			return ferrors.ErrInvalidTransition
		}

		// Batalkan semua transaksi open milik aplikasi ini.
		var open []paymentModel.PaymentTransactionModel
		if err := tx.
			Where("payment_transaction_application_id = ?", locked.AidApplicationID).
			Where("payment_transaction_status IN ?", []string{
				paymentModel.TransactionStatusPending,
				paymentModel.TransactionStatusProcessing,
			}).
			Find(&open).Error; err != nil {
			return err
		}
		for i := range open {
			txn, err := paymentService.LockTransactionTx(tx, open[i].PaymentTransactionID)
			if err != nil {
				return err
			}
			if err := txn.MarkCancelled(); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
		}

		if err := locked.ApplyRevertToApproved(); err != nil {
			return err
		}
		if err := tx.Save(locked).Error; err != nil {
			return err
		}

		if locked.AidApplicationPartnerSchoolBudgetID == nil && locked.AidApplicationBudgetAllocationID != nil {
			if _, err := budgetService.ReleaseReservationTx(tx, *locked.AidApplicationBudgetAllocationID, locked.AidApplicationAmountIDR); err != nil {
				return err
			}
		}

		app = locked
		return nil
	})
	return app, err
}

func (s *ApplicationGrantService) Get(ctx context.Context, appID uuid.UUID) (*model.AidApplicationModel, error) {
	var app model.AidApplicationModel
	err := s.DB.WithContext(ctx).
		Where("aid_application_id = ?", appID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationGrantService) List(ctx context.Context, schoolID *uuid.UUID, status string, offset, limit int) ([]model.AidApplicationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.AidApplicationModel{})
	if schoolID != nil {
		q = q.Where("aid_application_school_id = ?", *schoolID)
	}
	if status != "" {
		q = q.Where("aid_application_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AidApplicationModel
	if err := q.
		Order("aid_application_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
