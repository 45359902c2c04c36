package model

import (
	"errors"
	"testing"
	"time"

	"danasiswa_backend/internals/ferrors"
)

func newSubLedger(allocated, disbursed int64) *PartnerSchoolBudgetModel {
	return &PartnerSchoolBudgetModel{
		PartnerSchoolBudgetAcademicYear: "2025/2026",
		PartnerSchoolBudgetAllocatedIDR: allocated,
		PartnerSchoolBudgetDisbursedIDR: disbursed,
		PartnerSchoolBudgetStatus:       SchoolBudgetStatusActive,
	}
}

func TestHasFunds(t *testing.T) {
	sub := newSubLedger(1_000_000, 400_000)

	if !sub.HasFunds(600_000) {
		t.Fatal("HasFunds(600000) = false, want true")
	}
	if sub.HasFunds(600_001) {
		t.Fatal("HasFunds(600001) = true, want false")
	}
	if sub.HasFunds(0) || sub.HasFunds(-1) {
		t.Fatal("HasFunds harus false untuk amount <= 0")
	}
}

func TestDeductRefundRoundTrip(t *testing.T) {
	now := time.Now()
	sub := newSubLedger(1_000_000, 0)

	if err := sub.ApplyDeduct(300_000, now); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if err := sub.ApplyRefund(300_000, now); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if got := sub.AvailableIDR(); got != 1_000_000 {
		t.Fatalf("available setelah round-trip = %d, want 1000000", got)
	}
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusActive {
		t.Fatalf("status = %s, want active", sub.PartnerSchoolBudgetStatus)
	}
}

func TestDeductInsufficientLeavesRowUnchanged(t *testing.T) {
	now := time.Now()
	sub := newSubLedger(500_000, 200_000)

	err := sub.ApplyDeduct(300_001, now)
	if !errors.Is(err, ferrors.ErrInsufficientFunds) {
		t.Fatalf("deduct melebihi available = %v, want ErrInsufficientFunds", err)
	}
	if sub.PartnerSchoolBudgetDisbursedIDR != 200_000 {
		t.Fatalf("disbursed berubah setelah deduct gagal: %d", sub.PartnerSchoolBudgetDisbursedIDR)
	}
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusActive {
		t.Fatalf("status berubah setelah deduct gagal: %s", sub.PartnerSchoolBudgetStatus)
	}
}

func TestDeductToZeroMarksDepleted(t *testing.T) {
	now := time.Now()
	sub := newSubLedger(500_000, 0)

	if err := sub.ApplyDeduct(500_000, now); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusDepleted {
		t.Fatalf("status = %s, want depleted", sub.PartnerSchoolBudgetStatus)
	}

	// Refund mengembalikan available positif → status balik active.
	if err := sub.ApplyRefund(100_000, now); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusActive {
		t.Fatalf("status = %s, want active setelah refund", sub.PartnerSchoolBudgetStatus)
	}
}

func TestRefundBeyondDisbursedRejected(t *testing.T) {
	now := time.Now()
	sub := newSubLedger(500_000, 100_000)

	if err := sub.ApplyRefund(100_001, now); !errors.Is(err, ferrors.ErrInvalidAmount) {
		t.Fatalf("refund melebihi disbursed = %v, want ErrInvalidAmount", err)
	}
}

func TestAdjustAllocationRevivesDepleted(t *testing.T) {
	now := time.Now()
	sub := newSubLedger(500_000, 500_000)
	sub.RecomputeStatus(now)
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusDepleted {
		t.Fatalf("precondition: status = %s, want depleted", sub.PartnerSchoolBudgetStatus)
	}

	note := "tambahan alokasi semester genap"
	if err := sub.ApplyAllocationAdjust(800_000, &note, now); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusActive {
		t.Fatalf("status = %s, want active", sub.PartnerSchoolBudgetStatus)
	}
	if got := sub.AvailableIDR(); got != 300_000 {
		t.Fatalf("available = %d, want 300000", got)
	}
	if len(sub.PartnerSchoolBudgetAdjustmentNotes) != 1 || sub.PartnerSchoolBudgetAdjustmentNotes[0] != note {
		t.Fatalf("adjustment notes = %v", sub.PartnerSchoolBudgetAdjustmentNotes)
	}

	// Disbursed tidak boleh tersentuh oleh adjust.
	if sub.PartnerSchoolBudgetDisbursedIDR != 500_000 {
		t.Fatalf("disbursed = %d, want 500000", sub.PartnerSchoolBudgetDisbursedIDR)
	}
}

func TestRecomputeStatusExpiry(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)

	sub := newSubLedger(500_000, 0)
	sub.PartnerSchoolBudgetExpiryDate = &past
	sub.RecomputeStatus(now)
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusExpired {
		t.Fatalf("status = %s, want expired", sub.PartnerSchoolBudgetStatus)
	}

	// Depleted menang atas expired.
	sub.PartnerSchoolBudgetDisbursedIDR = 500_000
	sub.RecomputeStatus(now)
	if sub.PartnerSchoolBudgetStatus != SchoolBudgetStatusDepleted {
		t.Fatalf("status = %s, want depleted", sub.PartnerSchoolBudgetStatus)
	}
}
