package model

import (
	"errors"
	"testing"
	"time"

	"danasiswa_backend/internals/ferrors"
)

func TestTransactionTransitionMatrix(t *testing.T) {
	cases := []struct {
		from string
		to   string
		ok   bool
	}{
		{TransactionStatusPending, TransactionStatusProcessing, true},
		{TransactionStatusPending, TransactionStatusCompleted, true},
		{TransactionStatusPending, TransactionStatusFailed, true},
		{TransactionStatusPending, TransactionStatusCancelled, true},
		{TransactionStatusPending, TransactionStatusRefunded, false},
		{TransactionStatusProcessing, TransactionStatusCompleted, true},
		{TransactionStatusProcessing, TransactionStatusFailed, true},
		{TransactionStatusProcessing, TransactionStatusCancelled, true},
		{TransactionStatusProcessing, TransactionStatusPending, false},
		{TransactionStatusCompleted, TransactionStatusRefunded, true},
		{TransactionStatusCompleted, TransactionStatusFailed, false},
		{TransactionStatusCompleted, TransactionStatusCancelled, false},
		{TransactionStatusFailed, TransactionStatusCompleted, false},
		{TransactionStatusCancelled, TransactionStatusCompleted, false},
		{TransactionStatusRefunded, TransactionStatusCompleted, false},
	}

	for _, tc := range cases {
		m := &PaymentTransactionModel{PaymentTransactionStatus: tc.from}
		if got := m.CanTransition(tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestMarkCompletedStampsProviderIDs(t *testing.T) {
	m := &PaymentTransactionModel{PaymentTransactionStatus: TransactionStatusProcessing}
	txnID := "mt-9f2a"
	refNo := "REF-001"
	at := time.Now()

	if err := m.MarkCompleted(&txnID, &refNo, at); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if !m.IsCompleted() {
		t.Fatal("IsCompleted = false setelah MarkCompleted")
	}
	if m.PaymentTransactionCompletedAt == nil {
		t.Fatal("completed_at kosong")
	}
	if m.PaymentTransactionProviderTransactionID == nil || *m.PaymentTransactionProviderTransactionID != txnID {
		t.Fatal("provider_transaction_id tidak ter-stamp")
	}

	// Complete kedua kali = invalid; idempotensi ditangani caller.
	if err := m.MarkCompleted(&txnID, &refNo, at); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("MarkCompleted ulang = %v, want ErrInvalidTransition", err)
	}
}

func TestMarkRefundedOnlyFromCompleted(t *testing.T) {
	for _, from := range []string{
		TransactionStatusPending,
		TransactionStatusProcessing,
		TransactionStatusFailed,
		TransactionStatusCancelled,
	} {
		m := &PaymentTransactionModel{PaymentTransactionStatus: from}
		if err := m.MarkRefunded(); !errors.Is(err, ferrors.ErrInvalidTransition) {
			t.Errorf("MarkRefunded dari %s = %v, want ErrInvalidTransition", from, err)
		}
	}

	m := &PaymentTransactionModel{PaymentTransactionStatus: TransactionStatusCompleted}
	if err := m.MarkRefunded(); err != nil {
		t.Fatalf("MarkRefunded dari completed: %v", err)
	}
}

func TestMarkFailedKeepsReason(t *testing.T) {
	m := &PaymentTransactionModel{PaymentTransactionStatus: TransactionStatusPending}
	if err := m.MarkFailed("bank rejected"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if m.PaymentTransactionFailureReason == nil || *m.PaymentTransactionFailureReason != "bank rejected" {
		t.Fatal("failure_reason tidak tersimpan")
	}
}

func TestIsOpenAndExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	m := &PaymentTransactionModel{
		PaymentTransactionStatus:    TransactionStatusPending,
		PaymentTransactionExpiresAt: &future,
	}
	if !m.IsOpen() {
		t.Fatal("pending harus open")
	}
	if m.IsExpired(now) {
		t.Fatal("belum lewat expires_at tapi dianggap expired")
	}

	m.PaymentTransactionExpiresAt = &past
	if !m.IsExpired(now) {
		t.Fatal("sudah lewat expires_at tapi tidak expired")
	}

	m.PaymentTransactionExpiresAt = nil
	if m.IsExpired(now) {
		t.Fatal("tanpa expires_at tidak boleh expired")
	}

	m.PaymentTransactionStatus = TransactionStatusCompleted
	if m.IsOpen() {
		t.Fatal("completed bukan open")
	}
}
