// file: internals/features/finance/disbursements/controller/aid_disbursement_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"danasiswa_backend/internals/features/finance/disbursements/dto"
	"danasiswa_backend/internals/features/finance/disbursements/service"
	schoolLedgerService "danasiswa_backend/internals/features/finance/school_ledgers/service"
	helper "danasiswa_backend/internals/helpers"
)

type AidDisbursementController struct {
	DB       *gorm.DB
	Service  *service.FinalizerService
	Validate *validator.Validate
}

func NewAidDisbursementController(db *gorm.DB) *AidDisbursementController {
	return &AidDisbursementController{
		DB:       db,
		Service:  service.NewFinalizerService(db, schoolLedgerService.NewSchoolLedgerService(db)),
		Validate: validator.New(),
	}
}

func parseDisbursementID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

// GET /api/a/school-aid/disbursements
func (h *AidDisbursementController) ListDisbursements(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	status := strings.TrimSpace(c.Query("status"))

	var appID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("application_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "application_id tidak valid")
		}
		appID = &id
	}

	rows, total, err := h.Service.List(c.UserContext(), appID, status, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pencairan")
	}

	items := make([]dto.AidDisbursementResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToAidDisbursementResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar pencairan", items, helper.BuildPagination(paging, total))
}

// GET /api/a/school-aid/disbursements/:id
func (h *AidDisbursementController) GetDisbursement(c *fiber.Ctx) error {
	id, err := parseDisbursementID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "disbursement id tidak valid")
	}

	d, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Pencairan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pencairan")
	}
	return helper.JsonOK(c, "Detail pencairan", dto.ToAidDisbursementResponse(d))
}

// GET /api/a/school-aid/disbursements/:id/receipt
func (h *AidDisbursementController) GetReceipt(c *fiber.Ctx) error {
	id, err := parseDisbursementID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "disbursement id tidak valid")
	}

	d, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Pencairan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bukti pencairan")
	}
	return helper.JsonOK(c, "Bukti pencairan", dto.ToReceiptResponse(d))
}
