package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"danasiswa_backend/internals/features/finance/payments/model"
	"danasiswa_backend/internals/ferrors"
)

func signNotification(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func TestVerifyMidtransSignature(t *testing.T) {
	const (
		orderID   = "AID-20260828-100000-ABCD1234"
		status    = "200"
		gross     = "1500000.00"
		serverKey = "SB-Mid-server-testkey"
	)
	valid := signNotification(orderID, status, gross, serverKey)

	if !VerifyMidtransSignature(orderID, status, gross, serverKey, valid) {
		t.Fatal("signature valid ditolak")
	}
	if !VerifyMidtransSignature(orderID, status, gross, serverKey, strings.ToUpper(valid)) {
		t.Fatal("perbandingan signature harus case-insensitive")
	}
	if VerifyMidtransSignature(orderID, status, gross, serverKey, "") {
		t.Fatal("signature kosong harus ditolak")
	}
	if VerifyMidtransSignature(orderID, status, gross, "server-key-lain", valid) {
		t.Fatal("server key beda harus ditolak")
	}
	if VerifyMidtransSignature("AID-lain", status, gross, serverKey, valid) {
		t.Fatal("order id beda harus ditolak")
	}
	if VerifyMidtransSignature(orderID, status, "1500001.00", serverKey, valid) {
		t.Fatal("gross amount beda harus ditolak")
	}
}

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		txStatus    string
		fraudStatus string
		want        string
	}{
		{"settlement", "", model.TransactionStatusCompleted},
		{"capture", "accept", model.TransactionStatusCompleted},
		{"capture", "", model.TransactionStatusCompleted},
		{"capture", "challenge", model.TransactionStatusProcessing},
		{"capture", "deny", model.TransactionStatusFailed},
		{"pending", "", model.TransactionStatusProcessing},
		{"deny", "", model.TransactionStatusFailed},
		{"failure", "", model.TransactionStatusFailed},
		{"cancel", "", model.TransactionStatusCancelled},
		{"expire", "", model.TransactionStatusCancelled},
		{"refund", "", model.TransactionStatusRefunded},
		{"partial_refund", "", model.TransactionStatusRefunded},
		{"SETTLEMENT", "", model.TransactionStatusCompleted},
		{" settlement ", "", model.TransactionStatusCompleted},
		{"status-aneh", "", ""},
		{"", "", ""},
	}

	for _, tc := range cases {
		if got := MapMidtransStatus(tc.txStatus, tc.fraudStatus); got != tc.want {
			t.Errorf("MapMidtransStatus(%q, %q) = %q, want %q", tc.txStatus, tc.fraudStatus, got, tc.want)
		}
	}
}

func TestGenTransactionReference(t *testing.T) {
	a := GenTransactionReference("AID")
	b := GenTransactionReference("AID")

	if !strings.HasPrefix(a, "AID-") {
		t.Fatalf("reference %q tanpa prefix", a)
	}
	if a == b {
		t.Fatalf("dua reference identik: %s", a)
	}
	if len(a) > 64 {
		t.Fatalf("reference terlalu panjang untuk kolom varchar(64): %d", len(a))
	}
}

func TestVerifyGrossAmount(t *testing.T) {
	if err := verifyGrossAmount("1500000.00", 1_500_000); err != nil {
		t.Fatalf("gross cocok: %v", err)
	}
	if err := verifyGrossAmount("1500000", 1_500_000); err != nil {
		t.Fatalf("gross tanpa desimal: %v", err)
	}
	if err := verifyGrossAmount("1500001.00", 1_500_000); !errors.Is(err, ferrors.ErrProviderError) {
		t.Fatalf("gross beda = %v, want ErrProviderError", err)
	}
	if err := verifyGrossAmount("", 1_500_000); !errors.Is(err, ferrors.ErrProviderError) {
		t.Fatalf("gross kosong = %v, want ErrProviderError", err)
	}
	if err := verifyGrossAmount("abc", 1_500_000); !errors.Is(err, ferrors.ErrProviderError) {
		t.Fatalf("gross bukan angka = %v, want ErrProviderError", err)
	}
}
