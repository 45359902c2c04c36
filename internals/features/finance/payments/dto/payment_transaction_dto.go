// file: internals/features/finance/payments/dto/payment_transaction_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/payments/model"
)

/* ===================== Request ===================== */

// MidtransNotification: payload HTTP notification Midtrans.
// Semua nominal datang sebagai string ("150000.00").
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	ReferenceNumber   string `json:"reference_number"`
}

/* ===================== Response ===================== */

type PaymentTransactionResponse struct {
	PaymentTransactionID            uuid.UUID  `json:"payment_transaction_id"`
	PaymentTransactionReference     string     `json:"payment_transaction_reference"`
	PaymentTransactionApplicationID uuid.UUID  `json:"payment_transaction_application_id"`
	PaymentTransactionProvider      string     `json:"payment_transaction_provider"`
	PaymentTransactionMethod        string     `json:"payment_transaction_method"`
	PaymentTransactionAmountIDR     int64      `json:"payment_transaction_amount_idr"`
	PaymentTransactionStatus        string     `json:"payment_transaction_status"`
	PaymentTransactionFailureReason *string    `json:"payment_transaction_failure_reason,omitempty"`
	PaymentTransactionInitiatedAt   time.Time  `json:"payment_transaction_initiated_at"`
	PaymentTransactionCompletedAt   *time.Time `json:"payment_transaction_completed_at,omitempty"`
	PaymentTransactionExpiresAt     *time.Time `json:"payment_transaction_expires_at,omitempty"`
}

func ToPaymentTransactionResponse(m *model.PaymentTransactionModel) PaymentTransactionResponse {
	return PaymentTransactionResponse{
		PaymentTransactionID:            m.PaymentTransactionID,
		PaymentTransactionReference:     m.PaymentTransactionReference,
		PaymentTransactionApplicationID: m.PaymentTransactionApplicationID,
		PaymentTransactionProvider:      m.PaymentTransactionProvider,
		PaymentTransactionMethod:        m.PaymentTransactionMethod,
		PaymentTransactionAmountIDR:     m.PaymentTransactionAmountIDR,
		PaymentTransactionStatus:        m.PaymentTransactionStatus,
		PaymentTransactionFailureReason: m.PaymentTransactionFailureReason,
		PaymentTransactionInitiatedAt:   m.PaymentTransactionInitiatedAt,
		PaymentTransactionCompletedAt:   m.PaymentTransactionCompletedAt,
		PaymentTransactionExpiresAt:     m.PaymentTransactionExpiresAt,
	}
}

type GatewayEventResponse struct {
	GatewayEventID                   uuid.UUID  `json:"gateway_event_id"`
	GatewayEventProvider             string     `json:"gateway_event_provider"`
	GatewayEventTransactionReference *string    `json:"gateway_event_transaction_reference,omitempty"`
	GatewayEventStatus               string     `json:"gateway_event_status"`
	GatewayEventError                *string    `json:"gateway_event_error,omitempty"`
	GatewayEventReceivedAt           time.Time  `json:"gateway_event_received_at"`
	GatewayEventProcessedAt          *time.Time `json:"gateway_event_processed_at,omitempty"`
}

func ToGatewayEventResponse(m *model.GatewayEventModel) GatewayEventResponse {
	return GatewayEventResponse{
		GatewayEventID:                   m.GatewayEventID,
		GatewayEventProvider:             m.GatewayEventProvider,
		GatewayEventTransactionReference: m.GatewayEventTransactionReference,
		GatewayEventStatus:               m.GatewayEventStatus,
		GatewayEventError:                m.GatewayEventError,
		GatewayEventReceivedAt:           m.GatewayEventReceivedAt,
		GatewayEventProcessedAt:          m.GatewayEventProcessedAt,
	}
}
