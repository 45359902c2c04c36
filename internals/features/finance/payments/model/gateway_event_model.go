// file: internals/features/finance/payments/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  payment_gateway_events = LOG WEBHOOK / CALLBACK PROVIDER
  - Bisa banyak row per 1 transaksi (delivery at-least-once).
  - Nyimpen raw payload + signature + hasil processing, buat
    audit dan replay saat reconciliation.
*/

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusDuplicate = "duplicate"
	GatewayEventStatusRejected  = "rejected"
	GatewayEventStatusFailed    = "failed"
)

type GatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`

	GatewayEventProvider             string     `gorm:"column:gateway_event_provider;type:varchar(32);not null" json:"gateway_event_provider"`
	GatewayEventTransactionReference *string    `gorm:"column:gateway_event_transaction_reference;index" json:"gateway_event_transaction_reference,omitempty"`
	GatewayEventPaymentTransactionID *uuid.UUID `gorm:"column:gateway_event_payment_transaction_id;type:uuid;index" json:"gateway_event_payment_transaction_id,omitempty"`

	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature,omitempty"`

	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:varchar(16);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error;type:text" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEventModel) TableName() string { return "payment_gateway_events" }
