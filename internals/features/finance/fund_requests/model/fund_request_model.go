package model

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/ferrors"
)

/* ===================== Enums (string) ===================== */
/*
   pending --approve--> approved --disburse--> disbursed --liquidate--> liquidated
   pending --reject---> rejected
   Terminal: rejected, liquidated.
*/

const (
	FundRequestStatusPending    = "pending"
	FundRequestStatusApproved   = "approved"
	FundRequestStatusDisbursed  = "disbursed"
	FundRequestStatusRejected   = "rejected"
	FundRequestStatusLiquidated = "liquidated"
)

/* ===================== Model ===================== */

type FundRequestModel struct {
	FundRequestID uuid.UUID `gorm:"column:fund_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fund_request_id"`

	FundRequestPartnerSchoolBudgetID uuid.UUID `gorm:"column:fund_request_partner_school_budget_id;type:uuid;not null;index" json:"fund_request_partner_school_budget_id"`

	FundRequestAmountIDR int64  `gorm:"column:fund_request_amount_idr;not null;check:fund_request_amount_idr > 0" json:"fund_request_amount_idr"`
	FundRequestPurpose   string `gorm:"column:fund_request_purpose;type:text;not null" json:"fund_request_purpose"`

	FundRequestStatus string `gorm:"column:fund_request_status;type:fund_request_status;not null;default:'pending'" json:"fund_request_status"`

	FundRequestDocumentPath            *string `gorm:"column:fund_request_document_path;type:text" json:"fund_request_document_path,omitempty"`
	FundRequestLiquidationDocumentPath *string `gorm:"column:fund_request_liquidation_document_path;type:text" json:"fund_request_liquidation_document_path,omitempty"`

	FundRequestProcessedAt *time.Time `gorm:"column:fund_request_processed_at" json:"fund_request_processed_at,omitempty"`
	FundRequestProcessedBy *uuid.UUID `gorm:"column:fund_request_processed_by;type:uuid" json:"fund_request_processed_by,omitempty"`

	FundRequestCreatedAt time.Time `gorm:"column:fund_request_created_at;autoCreateTime" json:"fund_request_created_at"`
	FundRequestUpdatedAt time.Time `gorm:"column:fund_request_updated_at;autoUpdateTime" json:"fund_request_updated_at"`
}

func (FundRequestModel) TableName() string { return "partner_school_fund_requests" }

/* ===================== State machine ===================== */

var fundRequestTransitions = map[string][]string{
	FundRequestStatusPending:   {FundRequestStatusApproved, FundRequestStatusRejected},
	FundRequestStatusApproved:  {FundRequestStatusDisbursed},
	FundRequestStatusDisbursed: {FundRequestStatusLiquidated},
}

// CanTransition: cek legalitas perpindahan status.
func (m *FundRequestModel) CanTransition(to string) bool {
	for _, next := range fundRequestTransitions[m.FundRequestStatus] {
		if next == to {
			return true
		}
	}
	return false
}

func (m *FundRequestModel) IsTerminal() bool {
	return m.FundRequestStatus == FundRequestStatusRejected ||
		m.FundRequestStatus == FundRequestStatusLiquidated
}

// ApplyApprove: otorisasi saja, belum ada uang yang pindah.
func (m *FundRequestModel) ApplyApprove(by uuid.UUID, at time.Time) error {
	if !m.CanTransition(FundRequestStatusApproved) {
		return ferrors.ErrInvalidTransition
	}
	m.FundRequestStatus = FundRequestStatusApproved
	m.FundRequestProcessedAt = &at
	m.FundRequestProcessedBy = &by
	return nil
}

// ApplyReject: hanya dari pending, terminal, tanpa efek ledger.
func (m *FundRequestModel) ApplyReject(by uuid.UUID, at time.Time) error {
	if !m.CanTransition(FundRequestStatusRejected) {
		return ferrors.ErrInvalidTransition
	}
	m.FundRequestStatus = FundRequestStatusRejected
	m.FundRequestProcessedAt = &at
	m.FundRequestProcessedBy = &by
	return nil
}

// ApplyDisburse: dipanggil SETELAH deduct sub-ledger sukses.
// Kalau deduct gagal, caller tidak boleh memanggil ini — request tetap approved.
func (m *FundRequestModel) ApplyDisburse(by uuid.UUID, at time.Time) error {
	if !m.CanTransition(FundRequestStatusDisbursed) {
		return ferrors.ErrInvalidTransition
	}
	m.FundRequestStatus = FundRequestStatusDisbursed
	m.FundRequestProcessedAt = &at
	m.FundRequestProcessedBy = &by
	return nil
}

// ApplyLiquidate: penutupan audit, wajib ada bukti; tanpa efek ledger.
func (m *FundRequestModel) ApplyLiquidate(proofPath string) error {
	if proofPath == "" {
		return ferrors.ErrInvalidAmount
	}
	if !m.CanTransition(FundRequestStatusLiquidated) {
		return ferrors.ErrInvalidTransition
	}
	m.FundRequestStatus = FundRequestStatusLiquidated
	m.FundRequestLiquidationDocumentPath = &proofPath
	return nil
}
