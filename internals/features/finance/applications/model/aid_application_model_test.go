package model

import (
	"errors"
	"testing"

	"danasiswa_backend/internals/ferrors"
)

func TestApplyProcessGrant(t *testing.T) {
	m := &AidApplicationModel{AidApplicationStatus: ApplicationStatusApproved}
	if err := m.ApplyProcessGrant(); err != nil {
		t.Fatalf("process grant: %v", err)
	}
	if m.AidApplicationStatus != ApplicationStatusGrantsProcessing {
		t.Fatalf("status = %s, want grants_processing", m.AidApplicationStatus)
	}

	// Double process ditolak.
	if err := m.ApplyProcessGrant(); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("process grant ulang = %v, want ErrInvalidTransition", err)
	}
}

func TestApplyRevertToApproved(t *testing.T) {
	m := &AidApplicationModel{AidApplicationStatus: ApplicationStatusGrantsProcessing}
	if err := m.ApplyRevertToApproved(); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if m.AidApplicationStatus != ApplicationStatusApproved {
		t.Fatalf("status = %s, want approved", m.AidApplicationStatus)
	}

	m.AidApplicationStatus = ApplicationStatusGrantsDisbursed
	if err := m.ApplyRevertToApproved(); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("revert dari disbursed = %v, want ErrInvalidTransition", err)
	}
}

func TestApplyMarkDisbursed(t *testing.T) {
	// Jalur gateway: dari grants_processing.
	m := &AidApplicationModel{AidApplicationStatus: ApplicationStatusGrantsProcessing}
	if err := m.ApplyMarkDisbursed(); err != nil {
		t.Fatalf("mark disbursed dari processing: %v", err)
	}

	// Jalur manual: langsung dari approved.
	m = &AidApplicationModel{AidApplicationStatus: ApplicationStatusApproved}
	if err := m.ApplyMarkDisbursed(); err != nil {
		t.Fatalf("mark disbursed dari approved: %v", err)
	}

	// Double disburse ditolak.
	if err := m.ApplyMarkDisbursed(); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("mark disbursed ulang = %v, want ErrInvalidTransition", err)
	}
}

func TestApplyReverseGrant(t *testing.T) {
	m := &AidApplicationModel{AidApplicationStatus: ApplicationStatusGrantsDisbursed}
	if err := m.ApplyReverseGrant(); err != nil {
		t.Fatalf("reverse grant: %v", err)
	}
	if m.AidApplicationStatus != ApplicationStatusApproved {
		t.Fatalf("status = %s, want approved", m.AidApplicationStatus)
	}

	if err := m.ApplyReverseGrant(); !errors.Is(err, ferrors.ErrInvalidTransition) {
		t.Fatalf("reverse dari approved = %v, want ErrInvalidTransition", err)
	}
}
