// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"danasiswa_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil sekali saat bootstrap.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

// BeneficiaryInput: data penerima dana untuk transaksi provider.
type BeneficiaryInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// GenerateSnapToken membuat token Snap untuk satu payment transaction.
// transaction_reference dipakai sebagai OrderID — kunci korelasi webhook.
func GenerateSnapToken(t *model.PaymentTransactionModel, b BeneficiaryInput) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  t.PaymentTransactionReference,
			GrossAmt: t.PaymentTransactionAmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: b.FirstName,
			LName: b.LastName,
			Email: b.Email,
			Phone: b.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       t.PaymentTransactionReference,
				Price:    t.PaymentTransactionAmountIDR,
				Qty:      1,
				Name:     "Pencairan dana bantuan",
				Category: "school_aid",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Webhook helpers (pure, mudah dites)
========================================================= */

// VerifyMidtransSignature: signature_key = sha512(order_id + status_code
// + gross_amount + server_key). Wajib lolos sebelum payload dipercaya.
func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	if signature == "" {
		return false
	}
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(h[:])
	return strings.EqualFold(expected, signature)
}

// MapMidtransStatus mengonversi transaction_status + fraud_status Midtrans
// ke status transaksi internal. "" berarti tidak ada perubahan (no-op).
func MapMidtransStatus(transactionStatus, fraudStatus string) string {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case "capture":
		switch fraud {
		case "", "accept":
			return model.TransactionStatusCompleted
		case "challenge":
			return model.TransactionStatusProcessing
		default:
			return model.TransactionStatusFailed
		}

	case "settlement":
		return model.TransactionStatusCompleted

	case "pending":
		return model.TransactionStatusProcessing

	case "deny", "failure":
		return model.TransactionStatusFailed

	case "cancel", "expire":
		return model.TransactionStatusCancelled

	case "refund", "partial_refund":
		return model.TransactionStatusRefunded
	}

	return ""
}

// GenTransactionReference membuat reference unik dengan prefix tertentu.
// Dipakai sebagai OrderID Midtrans sekaligus idempotency key webhook.
func GenTransactionReference(prefix string) string {
	now := time.Now().Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now + "-" + strings.ToUpper(u)
}
