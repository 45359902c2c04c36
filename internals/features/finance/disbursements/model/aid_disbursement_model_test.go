package model

import (
	"errors"
	"testing"
	"time"

	"danasiswa_backend/internals/ferrors"
)

func TestApplyReverse(t *testing.T) {
	at := time.Now()
	m := &AidDisbursementModel{AidDisbursementStatus: DisbursementStatusCompleted}

	if err := m.ApplyReverse(at); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if m.AidDisbursementStatus != DisbursementStatusReversed {
		t.Fatalf("status = %s, want reversed", m.AidDisbursementStatus)
	}
	if m.AidDisbursementReversedAt == nil {
		t.Fatal("reversed_at kosong")
	}

	// Reverse kedua kali ditolak.
	if err := m.ApplyReverse(at); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("reverse ulang = %v, want ErrInvalidTransition", err)
	}
}
