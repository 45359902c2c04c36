package model

import (
	"errors"
	"testing"

	"danasiswa_backend/internals/ferrors"
)

func newEnvelope(total, allocated, disbursed int64) *BudgetAllocationModel {
	return &BudgetAllocationModel{
		BudgetAllocationBudgetType:   BudgetTypeSchoolAid,
		BudgetAllocationSchoolYear:   "2025/2026",
		BudgetAllocationTotalIDR:     total,
		BudgetAllocationAllocatedIDR: allocated,
		BudgetAllocationDisbursedIDR: disbursed,
	}
}

func TestApplyFund(t *testing.T) {
	env := newEnvelope(1_000_000, 0, 0)
	if err := env.ApplyFund(500_000); err != nil {
		t.Fatalf("ApplyFund: %v", err)
	}
	if env.BudgetAllocationTotalIDR != 1_500_000 {
		t.Fatalf("total = %d, want 1500000", env.BudgetAllocationTotalIDR)
	}

	if err := env.ApplyFund(0); !errors.Is(err, ferrors.ErrInvalidAmount) {
		t.Fatalf("ApplyFund(0) = %v, want ErrInvalidAmount", err)
	}
	if err := env.ApplyFund(-100); !errors.Is(err, ferrors.ErrInvalidAmount) {
		t.Fatalf("ApplyFund(-100) = %v, want ErrInvalidAmount", err)
	}
}

func TestApplySettleGuardsRemaining(t *testing.T) {
	env := newEnvelope(1_000_000, 0, 900_000)

	if err := env.ApplySettle(100_000); err != nil {
		t.Fatalf("settle dalam batas: %v", err)
	}
	if got := env.RemainingIDR(); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}

	// Satu rupiah pun lebih harus ditolak, dan row tidak berubah.
	before := env.BudgetAllocationDisbursedIDR
	if err := env.ApplySettle(1); !errors.Is(err, ferrors.ErrInsufficientFunds) {
		t.Fatalf("settle melebihi remaining = %v, want ErrInsufficientFunds", err)
	}
	if env.BudgetAllocationDisbursedIDR != before {
		t.Fatalf("disbursed berubah setelah settle gagal: %d", env.BudgetAllocationDisbursedIDR)
	}
}

func TestApplySetTotalRefusesBelowDisbursed(t *testing.T) {
	env := newEnvelope(1_000_000, 0, 600_000)

	if err := env.ApplySetTotal(599_999); !errors.Is(err, ferrors.ErrInsufficientFunds) {
		t.Fatalf("set total di bawah disbursed = %v, want ErrInsufficientFunds", err)
	}
	if err := env.ApplySetTotal(600_000); err != nil {
		t.Fatalf("set total == disbursed: %v", err)
	}
	if env.RemainingIDR() != 0 {
		t.Fatalf("remaining = %d, want 0", env.RemainingIDR())
	}
}

func TestReserveAndRelease(t *testing.T) {
	env := newEnvelope(1_000_000, 0, 0)

	if err := env.ApplyReserve(300_000); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if env.BudgetAllocationAllocatedIDR != 300_000 {
		t.Fatalf("allocated = %d, want 300000", env.BudgetAllocationAllocatedIDR)
	}

	if err := env.ApplyReleaseReservation(400_000); !errors.Is(err, ferrors.ErrInvalidAmount) {
		t.Fatalf("release melebihi allocated = %v, want ErrInvalidAmount", err)
	}
	if err := env.ApplyReleaseReservation(300_000); err != nil {
		t.Fatalf("release: %v", err)
	}
	if env.BudgetAllocationAllocatedIDR != 0 {
		t.Fatalf("allocated = %d, want 0", env.BudgetAllocationAllocatedIDR)
	}
}

func TestSettleUnsettleRoundTrip(t *testing.T) {
	env := newEnvelope(2_000_000, 0, 0)

	if err := env.ApplySettle(750_000); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if err := env.ApplyUnsettle(750_000); err != nil {
		t.Fatalf("unsettle: %v", err)
	}
	if env.BudgetAllocationDisbursedIDR != 0 {
		t.Fatalf("disbursed = %d, want 0", env.BudgetAllocationDisbursedIDR)
	}

	if err := env.ApplyUnsettle(1); !errors.Is(err, ferrors.ErrInvalidAmount) {
		t.Fatalf("unsettle melebihi disbursed = %v, want ErrInvalidAmount", err)
	}
}
