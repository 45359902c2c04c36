// file: internals/features/finance/payments/service/webhook_service.go
package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	appModel "danasiswa_backend/internals/features/finance/applications/model"
	budgetService "danasiswa_backend/internals/features/finance/budgets/service"
	disbursementService "danasiswa_backend/internals/features/finance/disbursements/service"
	"danasiswa_backend/internals/features/finance/payments/dto"
	"danasiswa_backend/internals/features/finance/payments/model"
	"danasiswa_backend/internals/ferrors"
)

/* =========================================================
   WebhookService — HTTP notification Midtrans

   Delivery provider itu at-least-once dan bisa out-of-order,
   jadi handler ini idempotent:
   - signature wajib valid sebelum payload dipercaya;
   - notifikasi yang tidak mengubah status (status sama, atau
     transisi ilegal karena sudah terminal) dijawab duplicate,
     bukan error;
   - semua delivery dicatat di payment_gateway_events.
========================================================= */

const (
	WebhookOutcomeProcessed = "processed"
	WebhookOutcomeDuplicate = "duplicate"
	WebhookOutcomeIgnored   = "ignored"
)

type WebhookService struct {
	DB        *gorm.DB
	Finalizer *disbursementService.FinalizerService
	ServerKey string
}

func NewWebhookService(db *gorm.DB, finalizer *disbursementService.FinalizerService, serverKey string) *WebhookService {
	return &WebhookService{DB: db, Finalizer: finalizer, ServerKey: serverKey}
}

// HandleMidtrans memproses satu notifikasi. Return outcome untuk
// controller (processed/duplicate/ignored) atau error sentinel.
func (s *WebhookService) HandleMidtrans(ctx context.Context, n dto.MidtransNotification, rawBody []byte) (string, error) {
	event := model.GatewayEventModel{
		GatewayEventProvider:             model.PaymentProviderMidtrans,
		GatewayEventTransactionReference: &n.OrderID,
		GatewayEventPayload:              datatypes.JSON(rawBody),
		GatewayEventSignature:            &n.SignatureKey,
		GatewayEventStatus:               model.GatewayEventStatusReceived,
		GatewayEventReceivedAt:           time.Now(),
	}
	// Audit row ditulis sebelum processing — delivery yang gagal
	// pun tetap kelihatan jejaknya.
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return "", err
	}

	if !VerifyMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.ServerKey, n.SignatureKey) {
		s.closeEvent(ctx, &event, model.GatewayEventStatusRejected, "signature mismatch")
		return "", ferrors.ErrInvalidSignature
	}

	outcome, err := s.applyNotification(ctx, n, &event)
	switch {
	case err != nil:
		s.closeEvent(ctx, &event, model.GatewayEventStatusFailed, err.Error())
		return "", err
	case outcome == WebhookOutcomeDuplicate, outcome == WebhookOutcomeIgnored:
		s.closeEvent(ctx, &event, model.GatewayEventStatusDuplicate, "")
	default:
		s.closeEvent(ctx, &event, model.GatewayEventStatusProcessed, "")
	}
	return outcome, nil
}

func (s *WebhookService) applyNotification(ctx context.Context, n dto.MidtransNotification, event *model.GatewayEventModel) (string, error) {
	target := MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	if target == "" {
		log.Printf("[WEBHOOK] status midtrans tidak dikenal: %q (order %s)", n.TransactionStatus, n.OrderID)
		return WebhookOutcomeIgnored, nil
	}

	var outcome string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := LockTransactionByReferenceTx(tx, n.OrderID)
		if err != nil {
			return err
		}
		event.GatewayEventPaymentTransactionID = &txn.PaymentTransactionID

		if err := verifyGrossAmount(n.GrossAmount, txn.PaymentTransactionAmountIDR); err != nil {
			return err
		}

		// Idempotensi + out-of-order: delivery yang tidak bisa
		// menggerakkan state machine bukan error.
		if txn.PaymentTransactionStatus == target {
			outcome = WebhookOutcomeDuplicate
			return nil
		}
		if !txn.CanTransition(target) {
			outcome = WebhookOutcomeIgnored
			return nil
		}

		txn.PaymentTransactionProviderResponse = datatypes.JSON(event.GatewayEventPayload)

		switch target {
		case model.TransactionStatusProcessing:
			if err := txn.MarkProcessing(); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}

		case model.TransactionStatusCompleted:
			now := time.Now()
			refNo := strPtrOrNil(n.ReferenceNumber)
			if err := txn.MarkCompleted(strPtrOrNil(n.TransactionID), refNo, now); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
			if _, err := s.Finalizer.FinalizeFromTransactionTx(tx, txn); err != nil {
				return err
			}

		case model.TransactionStatusFailed:
			reason := n.StatusMessage
			if reason == "" {
				reason = "provider: " + n.TransactionStatus
			}
			if err := txn.MarkFailed(reason); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
			if err := revertGrantTx(tx, txn); err != nil {
				return err
			}

		case model.TransactionStatusCancelled:
			if err := txn.MarkCancelled(); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
			if err := revertGrantTx(tx, txn); err != nil {
				return err
			}

		case model.TransactionStatusRefunded:
			if err := txn.MarkRefunded(); err != nil {
				return err
			}
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
			if _, err := s.Finalizer.ReverseByTransactionTx(tx, txn); err != nil {
				return err
			}
		}

		outcome = WebhookOutcomeProcessed
		return nil
	})
	return outcome, err
}

// revertGrantTx: transaksi gagal/batal sebelum settle — aplikasi balik
// ke approved dan reservation envelope (jalur non-partner) dilepas.
// Dana belum pernah keluar, jadi tidak ada refund ledger di sini.
func revertGrantTx(tx *gorm.DB, txn *model.PaymentTransactionModel) error {
	app, err := disbursementService.LockApplicationTx(tx, txn.PaymentTransactionApplicationID)
	if err != nil {
		return err
	}
	if app.AidApplicationStatus != appModel.ApplicationStatusGrantsProcessing {
		return nil
	}

	if err := app.ApplyRevertToApproved(); err != nil {
		return err
	}
	if err := tx.Save(app).Error; err != nil {
		return err
	}

	if app.AidApplicationPartnerSchoolBudgetID == nil && app.AidApplicationBudgetAllocationID != nil {
		if _, err := budgetService.ReleaseReservationTx(tx, *app.AidApplicationBudgetAllocationID, txn.PaymentTransactionAmountIDR); err != nil {
			return err
		}
	}
	return nil
}

// closeEvent: best-effort update audit row; gagal update tidak boleh
// menggagalkan webhook.
func (s *WebhookService) closeEvent(ctx context.Context, event *model.GatewayEventModel, status, errMsg string) {
	now := time.Now()
	event.GatewayEventStatus = status
	event.GatewayEventProcessedAt = &now
	if errMsg != "" {
		event.GatewayEventError = &errMsg
	}
	if err := s.DB.WithContext(ctx).Save(event).Error; err != nil {
		log.Printf("[WEBHOOK][WARN] gagal update gateway event %s: %v", event.GatewayEventID, err)
	}
}

// verifyGrossAmount: gross_amount Midtrans format "150000.00".
func verifyGrossAmount(gross string, expectedIDR int64) error {
	gross = strings.TrimSpace(gross)
	if gross == "" {
		return ferrors.ErrProviderError
	}
	f, err := strconv.ParseFloat(gross, 64)
	if err != nil {
		return ferrors.ErrProviderError
	}
	if int64(f+0.5) != expectedIDR {
		return ferrors.ErrProviderError
	}
	return nil
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

/* ===================== Queries ===================== */

func (s *WebhookService) ListEvents(ctx context.Context, reference string, offset, limit int) ([]model.GatewayEventModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.GatewayEventModel{})
	if reference != "" {
		q = q.Where("gateway_event_transaction_reference = ?", reference)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.GatewayEventModel
	if err := q.
		Order("gateway_event_received_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
