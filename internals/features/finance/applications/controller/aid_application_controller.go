// file: internals/features/finance/applications/controller/aid_application_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/applications/dto"
	"danasiswa_backend/internals/features/finance/applications/service"
	disbursementDto "danasiswa_backend/internals/features/finance/disbursements/dto"
	disbursementService "danasiswa_backend/internals/features/finance/disbursements/service"
	paymentDto "danasiswa_backend/internals/features/finance/payments/dto"
	paymentService "danasiswa_backend/internals/features/finance/payments/service"
	helper "danasiswa_backend/internals/helpers"
)

type AidApplicationController struct {
	DB       *gorm.DB
	Service  *service.ApplicationGrantService
	Validate *validator.Validate
}

func NewAidApplicationController(db *gorm.DB) *AidApplicationController {
	return &AidApplicationController{
		DB:       db,
		Service:  service.NewApplicationGrantService(db),
		Validate: validator.New(),
	}
}

func parseApplicationID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

// POST /api/a/school-aid/applications
func (h *AidApplicationController) CreateApplication(c *fiber.Ctx) error {
	var req dto.CreateAidApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if (req.PartnerSchoolBudgetID == nil) == (req.BudgetAllocationID == nil) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"isi tepat satu: partner_school_budget_id atau budget_allocation_id")
	}

	app, err := h.Service.Create(c.UserContext(), service.CreateApplicationInput{
		StudentName:           strings.TrimSpace(req.StudentName),
		SchoolID:              req.SchoolID,
		SchoolYear:            strings.TrimSpace(req.SchoolYear),
		AmountIDR:             req.AmountIDR,
		PartnerSchoolBudgetID: req.PartnerSchoolBudgetID,
		BudgetAllocationID:    req.BudgetAllocationID,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Sumber dana tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Aplikasi terdaftar di pipeline grant", dto.ToAidApplicationResponse(app))
}

// POST /api/a/school-aid/applications/:id/process-grant
func (h *AidApplicationController) ProcessGrant(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "application id tidak valid")
	}

	var req dto.ProcessGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := h.Service.ProcessGrant(c.UserContext(), appID, paymentService.BeneficiaryInput{
		FirstName: req.BeneficiaryFirstName,
		LastName:  req.BeneficiaryLastName,
		Email:     req.BeneficiaryEmail,
		Phone:     req.BeneficiaryPhone,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}

	return helper.JsonCreated(c, "Grant diproses, transaksi gateway dibuka", dto.ProcessGrantResponse{
		Application: dto.ToAidApplicationResponse(res.Application),
		Transaction: paymentDto.ToPaymentTransactionResponse(res.Transaction),
		SnapToken:   res.SnapToken,
		RedirectURL: res.RedirectURL,
	})
}

// POST /api/a/school-aid/applications/:id/disburse
// Jalur manual: transfer bank / tunai / cek, tanpa gateway.
func (h *AidApplicationController) DisburseManual(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "application id tidak valid")
	}

	var req disbursementDto.ManualDisburseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var by *uuid.UUID
	if adminID, err := helper.GetUserIDFromToken(c); err == nil {
		by = &adminID
	}

	d, err := h.Service.DisburseManual(c.UserContext(), disbursementService.ManualDisbursementInput{
		ApplicationID:    appID,
		Method:           req.Method,
		Reference:        strings.TrimSpace(req.Reference),
		RecipientAccount: req.RecipientAccount,
		ReceiptPath:      req.ReceiptPath,
		DisbursedBy:      by,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Dana dicairkan", disbursementDto.ToAidDisbursementResponse(d))
}

// POST /api/a/school-aid/applications/:id/revert
func (h *AidApplicationController) RevertOnCancel(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "application id tidak valid")
	}

	app, err := h.Service.RevertOnCancel(c.UserContext(), appID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return helper.JsonLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Grant dibatalkan, aplikasi kembali approved", dto.ToAidApplicationResponse(app))
}

// GET /api/a/school-aid/applications
func (h *AidApplicationController) ListApplications(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	status := strings.TrimSpace(c.Query("status"))

	var schoolID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("school_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
		}
		schoolID = &id
	}

	rows, total, err := h.Service.List(c.UserContext(), schoolID, status, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	items := make([]dto.AidApplicationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToAidApplicationResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar aplikasi", items, helper.BuildPagination(paging, total))
}

// GET /api/a/school-aid/applications/:id
func (h *AidApplicationController) GetApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "application id tidak valid")
	}

	app, err := h.Service.Get(c.UserContext(), appID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil aplikasi")
	}
	return helper.JsonOK(c, "Detail aplikasi", dto.ToAidApplicationResponse(app))
}
