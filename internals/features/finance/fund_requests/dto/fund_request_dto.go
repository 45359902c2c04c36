package dto

import (
	"time"

	"github.com/google/uuid"

	"danasiswa_backend/internals/features/finance/fund_requests/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreateFundRequestRequest struct {
	FundRequestPartnerSchoolBudgetID uuid.UUID `json:"fund_request_partner_school_budget_id" validate:"required"`
	FundRequestAmountIDR             int64     `json:"fund_request_amount_idr" validate:"required,gt=0"`
	FundRequestPurpose               string    `json:"fund_request_purpose" validate:"required,min=3"`
	FundRequestDocumentPath          *string   `json:"fund_request_document_path,omitempty"`
}

type LiquidateFundRequestRequest struct {
	LiquidationDocumentPath string `json:"liquidation_document_path" validate:"required"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type FundRequestResponse struct {
	FundRequestID                      uuid.UUID  `json:"fund_request_id"`
	FundRequestPartnerSchoolBudgetID   uuid.UUID  `json:"fund_request_partner_school_budget_id"`
	FundRequestAmountIDR               int64      `json:"fund_request_amount_idr"`
	FundRequestPurpose                 string     `json:"fund_request_purpose"`
	FundRequestStatus                  string     `json:"fund_request_status"`
	FundRequestDocumentPath            *string    `json:"fund_request_document_path,omitempty"`
	FundRequestLiquidationDocumentPath *string    `json:"fund_request_liquidation_document_path,omitempty"`
	FundRequestProcessedAt             *time.Time `json:"fund_request_processed_at,omitempty"`
	FundRequestProcessedBy             *uuid.UUID `json:"fund_request_processed_by,omitempty"`
	FundRequestCreatedAt               time.Time  `json:"fund_request_created_at"`
}

func ToFundRequestResponse(m *model.FundRequestModel) FundRequestResponse {
	return FundRequestResponse{
		FundRequestID:                      m.FundRequestID,
		FundRequestPartnerSchoolBudgetID:   m.FundRequestPartnerSchoolBudgetID,
		FundRequestAmountIDR:               m.FundRequestAmountIDR,
		FundRequestPurpose:                 m.FundRequestPurpose,
		FundRequestStatus:                  m.FundRequestStatus,
		FundRequestDocumentPath:            m.FundRequestDocumentPath,
		FundRequestLiquidationDocumentPath: m.FundRequestLiquidationDocumentPath,
		FundRequestProcessedAt:             m.FundRequestProcessedAt,
		FundRequestProcessedBy:             m.FundRequestProcessedBy,
		FundRequestCreatedAt:               m.FundRequestCreatedAt,
	}
}
