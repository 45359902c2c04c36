package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/ferrors"
)

func TestFundRequestTransitionMatrix(t *testing.T) {
	cases := []struct {
		from string
		to   string
		ok   bool
	}{
		{FundRequestStatusPending, FundRequestStatusApproved, true},
		{FundRequestStatusPending, FundRequestStatusRejected, true},
		{FundRequestStatusPending, FundRequestStatusDisbursed, false},
		{FundRequestStatusPending, FundRequestStatusLiquidated, false},
		{FundRequestStatusApproved, FundRequestStatusDisbursed, true},
		{FundRequestStatusApproved, FundRequestStatusRejected, false},
		{FundRequestStatusApproved, FundRequestStatusLiquidated, false},
		{FundRequestStatusDisbursed, FundRequestStatusLiquidated, true},
		{FundRequestStatusDisbursed, FundRequestStatusApproved, false},
		{FundRequestStatusRejected, FundRequestStatusApproved, false},
		{FundRequestStatusLiquidated, FundRequestStatusDisbursed, false},
	}

	for _, tc := range cases {
		m := &FundRequestModel{FundRequestStatus: tc.from}
		if got := m.CanTransition(tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		FundRequestStatusPending:    false,
		FundRequestStatusApproved:   false,
		FundRequestStatusDisbursed:  false,
		FundRequestStatusRejected:   true,
		FundRequestStatusLiquidated: true,
	} {
		m := &FundRequestModel{FundRequestStatus: status}
		if got := m.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestApplyApproveStampsProcessor(t *testing.T) {
	by := uuid.New()
	at := time.Now()
	m := &FundRequestModel{FundRequestStatus: FundRequestStatusPending}

	if err := m.ApplyApprove(by, at); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if m.FundRequestStatus != FundRequestStatusApproved {
		t.Fatalf("status = %s, want approved", m.FundRequestStatus)
	}
	if m.FundRequestProcessedBy == nil || *m.FundRequestProcessedBy != by {
		t.Fatal("processed_by tidak ter-stamp")
	}

	// Approve kedua kali ditolak.
	if err := m.ApplyApprove(by, at); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("approve dari approved = %v, want ErrInvalidTransition", err)
	}
}

func TestApplyLiquidateRequiresProof(t *testing.T) {
	m := &FundRequestModel{FundRequestStatus: FundRequestStatusDisbursed}

	if err := m.ApplyLiquidate(""); err == nil {
		t.Fatal("liquidate tanpa bukti harus ditolak")
	}
	if err := m.ApplyLiquidate("/uploads/bukti-spj.pdf"); err != nil {
		t.Fatalf("liquidate: %v", err)
	}
	if m.FundRequestLiquidationDocumentPath == nil {
		t.Fatal("liquidation_document_path kosong")
	}
}

func TestApplyRejectOnlyFromPending(t *testing.T) {
	by := uuid.New()
	at := time.Now()

	m := &FundRequestModel{FundRequestStatus: FundRequestStatusApproved}
	if err := m.ApplyReject(by, at); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("reject dari approved = %v, want ErrInvalidTransition", err)
	}

	m.FundRequestStatus = FundRequestStatusPending
	if err := m.ApplyReject(by, at); err != nil {
		t.Fatalf("reject dari pending: %v", err)
	}
}
