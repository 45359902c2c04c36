package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM payment_transaction_status di PostgreSQL.
   Transisi satu arah, kecuali refund yang boleh menyusul completed:

     pending → processing → completed → refunded
     pending|processing → failed
     pending|processing → cancelled
*/

const (
	TransactionStatusPending    = "pending"
	TransactionStatusProcessing = "processing"
	TransactionStatusCompleted  = "completed"
	TransactionStatusFailed     = "failed"
	TransactionStatusCancelled  = "cancelled"
	TransactionStatusRefunded   = "refunded"
)

const (
	PaymentProviderMidtrans = "midtrans"
	PaymentProviderManual   = "manual"
)

const (
	PaymentMethodGateway      = "gateway"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
)

/* ===================== Model ===================== */

type PaymentTransactionModel struct {
	PaymentTransactionID uuid.UUID `gorm:"column:payment_transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_transaction_id"`

	// Idempotency key global — dipakai mencocokkan webhook provider.
	PaymentTransactionReference string `gorm:"column:payment_transaction_reference;type:varchar(64);not null;uniqueIndex" json:"payment_transaction_reference"`

	PaymentTransactionApplicationID uuid.UUID `gorm:"column:payment_transaction_application_id;type:uuid;not null;index" json:"payment_transaction_application_id"`

	PaymentTransactionProvider  string `gorm:"column:payment_transaction_provider;type:varchar(32);not null" json:"payment_transaction_provider"`
	PaymentTransactionMethod    string `gorm:"column:payment_transaction_method;type:varchar(32);not null" json:"payment_transaction_method"`
	PaymentTransactionAmountIDR int64  `gorm:"column:payment_transaction_amount_idr;not null;check:payment_transaction_amount_idr > 0" json:"payment_transaction_amount_idr"`

	PaymentTransactionStatus string `gorm:"column:payment_transaction_status;type:payment_transaction_status;not null;default:'pending'" json:"payment_transaction_status"`

	PaymentTransactionProviderTransactionID   *string `gorm:"column:payment_transaction_provider_transaction_id" json:"payment_transaction_provider_transaction_id,omitempty"`
	PaymentTransactionProviderReferenceNumber *string `gorm:"column:payment_transaction_provider_reference_number" json:"payment_transaction_provider_reference_number,omitempty"`

	PaymentTransactionInitiatedAt time.Time  `gorm:"column:payment_transaction_initiated_at;not null;default:now()" json:"payment_transaction_initiated_at"`
	PaymentTransactionCompletedAt *time.Time `gorm:"column:payment_transaction_completed_at" json:"payment_transaction_completed_at,omitempty"`
	PaymentTransactionExpiresAt   *time.Time `gorm:"column:payment_transaction_expires_at" json:"payment_transaction_expires_at,omitempty"`

	// Raw response provider (buat debug / replay).
	PaymentTransactionProviderResponse datatypes.JSON `gorm:"column:payment_transaction_provider_response;type:jsonb" json:"payment_transaction_provider_response,omitempty"`
	PaymentTransactionFailureReason    *string        `gorm:"column:payment_transaction_failure_reason;type:text" json:"payment_transaction_failure_reason,omitempty"`

	PaymentTransactionCreatedAt time.Time      `gorm:"column:payment_transaction_created_at;autoCreateTime" json:"payment_transaction_created_at"`
	PaymentTransactionUpdatedAt time.Time      `gorm:"column:payment_transaction_updated_at;autoUpdateTime" json:"payment_transaction_updated_at"`
	PaymentTransactionDeletedAt gorm.DeletedAt `gorm:"column:payment_transaction_deleted_at;index" json:"payment_transaction_deleted_at,omitempty"`
}

func (PaymentTransactionModel) TableName() string { return "payment_transactions" }

/* ===================== State machine ===================== */

var transactionTransitions = map[string][]string{
	TransactionStatusPending:    {TransactionStatusProcessing, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled},
	TransactionStatusProcessing: {TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled},
	TransactionStatusCompleted:  {TransactionStatusRefunded},
}

func (m *PaymentTransactionModel) CanTransition(to string) bool {
	for _, next := range transactionTransitions[m.PaymentTransactionStatus] {
		if next == to {
			return true
		}
	}
	return false
}

func (m *PaymentTransactionModel) IsCompleted() bool {
	return m.PaymentTransactionStatus == TransactionStatusCompleted
}

func (m *PaymentTransactionModel) IsOpen() bool {
	return m.PaymentTransactionStatus == TransactionStatusPending ||
		m.PaymentTransactionStatus == TransactionStatusProcessing
}

func (m *PaymentTransactionModel) IsExpired(now time.Time) bool {
	return m.PaymentTransactionExpiresAt != nil && now.After(*m.PaymentTransactionExpiresAt)
}

func (m *PaymentTransactionModel) MarkProcessing() error {
	if !m.CanTransition(TransactionStatusProcessing) {
		return ferrors.ErrInvalidTransition
	}
	m.PaymentTransactionStatus = TransactionStatusProcessing
	return nil
}

// MarkCompleted: legal dari pending/processing. Caller yang menjaga
// idempotensi webhook (cek IsCompleted dulu) — method ini strict.
func (m *PaymentTransactionModel) MarkCompleted(providerTxnID, providerRefNo *string, at time.Time) error {
	if !m.CanTransition(TransactionStatusCompleted) {
		return ferrors.ErrInvalidTransition
	}
	m.PaymentTransactionStatus = TransactionStatusCompleted
	m.PaymentTransactionCompletedAt = &at
	if providerTxnID != nil {
		m.PaymentTransactionProviderTransactionID = providerTxnID
	}
	if providerRefNo != nil {
		m.PaymentTransactionProviderReferenceNumber = providerRefNo
	}
	return nil
}

func (m *PaymentTransactionModel) MarkFailed(reason string) error {
	if !m.CanTransition(TransactionStatusFailed) {
		return ferrors.ErrInvalidTransition
	}
	m.PaymentTransactionStatus = TransactionStatusFailed
	m.PaymentTransactionFailureReason = &reason
	return nil
}

func (m *PaymentTransactionModel) MarkCancelled() error {
	if !m.CanTransition(TransactionStatusCancelled) {
		return ferrors.ErrInvalidTransition
	}
	m.PaymentTransactionStatus = TransactionStatusCancelled
	return nil
}

// MarkRefunded: satu-satunya mundur dari completed.
func (m *PaymentTransactionModel) MarkRefunded() error {
	if !m.CanTransition(TransactionStatusRefunded) {
		return ferrors.ErrInvalidTransition
	}
	m.PaymentTransactionStatus = TransactionStatusRefunded
	return nil
}
