package model

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */
/* Hanya irisan status grant yang dimodelkan di service ini;
   siklus pengajuan/verifikasi aplikasi ada di service lain. */

const (
	ApplicationStatusApproved         = "approved"
	ApplicationStatusGrantsProcessing = "grants_processing"
	ApplicationStatusGrantsDisbursed  = "grants_disbursed"
)

/* ===================== Model ===================== */

type AidApplicationModel struct {
	AidApplicationID uuid.UUID `gorm:"column:aid_application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"aid_application_id"`

	AidApplicationStudentName string    `gorm:"column:aid_application_student_name;type:varchar(128);not null" json:"aid_application_student_name"`
	AidApplicationSchoolID    uuid.UUID `gorm:"column:aid_application_school_id;type:uuid;not null;index" json:"aid_application_school_id"`
	AidApplicationSchoolYear  string    `gorm:"column:aid_application_school_year;type:varchar(16);not null" json:"aid_application_school_year"`

	// Sumber dana: sub-ledger sekolah partner, ATAU envelope langsung
	// untuk penerima non-partner (tepat salah satu yang terisi).
	AidApplicationPartnerSchoolBudgetID *uuid.UUID `gorm:"column:aid_application_partner_school_budget_id;type:uuid;index" json:"aid_application_partner_school_budget_id,omitempty"`
	AidApplicationBudgetAllocationID    *uuid.UUID `gorm:"column:aid_application_budget_allocation_id;type:uuid;index" json:"aid_application_budget_allocation_id,omitempty"`

	AidApplicationAmountIDR int64  `gorm:"column:aid_application_amount_idr;not null;check:aid_application_amount_idr > 0" json:"aid_application_amount_idr"`
	AidApplicationStatus    string `gorm:"column:aid_application_status;type:varchar(32);not null;default:'approved'" json:"aid_application_status"`

	AidApplicationCreatedAt time.Time `gorm:"column:aid_application_created_at;autoCreateTime" json:"aid_application_created_at"`
	AidApplicationUpdatedAt time.Time `gorm:"column:aid_application_updated_at;autoUpdateTime" json:"aid_application_updated_at"`
}

func (AidApplicationModel) TableName() string { return "aid_applications" }

/* ===================== Grant transitions ===================== */

// ApplyProcessGrant: approved → grants_processing (transaksi provider dibuka).
func (m *AidApplicationModel) ApplyProcessGrant() error {
	if m.AidApplicationStatus != ApplicationStatusApproved {
		return ferrors.ErrInvalidTransition
	}
	m.AidApplicationStatus = ApplicationStatusGrantsProcessing
	return nil
}

// ApplyRevertToApproved: grants_processing → approved (cancel/failed/expired).
func (m *AidApplicationModel) ApplyRevertToApproved() error {
	if m.AidApplicationStatus != ApplicationStatusGrantsProcessing {
		return ferrors.ErrInvalidTransition
	}
	m.AidApplicationStatus = ApplicationStatusApproved
	return nil
}

// ApplyReverseGrant: grants_disbursed → approved (refund provider,
// pencairan dibatalkan setelah sempat settle).
func (m *AidApplicationModel) ApplyReverseGrant() error {
	if m.AidApplicationStatus != ApplicationStatusGrantsDisbursed {
		return ferrors.ErrInvalidTransition
	}
	m.AidApplicationStatus = ApplicationStatusApproved
	return nil
}

// ApplyMarkDisbursed: stamp terminal setelah finalizer sukses.
// Jalur manual boleh langsung dari approved.
func (m *AidApplicationModel) ApplyMarkDisbursed() error {
	switch m.AidApplicationStatus {
	case ApplicationStatusGrantsProcessing, ApplicationStatusApproved:
		m.AidApplicationStatus = ApplicationStatusGrantsDisbursed
		return nil
	default:
		return ferrors.ErrInvalidTransition
	}
}
