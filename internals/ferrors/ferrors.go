// file: internals/ferrors/ferrors.go
package ferrors

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   Error taxonomy ledger/disbursement core
   Dipakai lintas feature: budgets, school_ledgers,
   fund_requests, payments, disbursements.
========================================================= */

var (
	// ErrInsufficientFunds: deduct/settle melebihi dana tersedia.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransition: perpindahan status yang tidak legal.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateDisbursement: aplikasi sudah punya disbursement completed.
	ErrDuplicateDisbursement = errors.New("duplicate disbursement")

	// ErrProviderError: kegagalan dari payment gateway / webhook.
	ErrProviderError = errors.New("payment provider error")

	// ErrStaleReference: source_budget_id menggantung (parent sudah dihapus).
	ErrStaleReference = errors.New("stale budget reference")

	// ErrInvalidAmount: nominal <= 0 atau refund melebihi yang terpakai.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSignature: signature webhook tidak cocok.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Code mengubah sentinel jadi error_code stabil untuk response JSON.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrDuplicateDisbursement):
		return "DUPLICATE_DISBURSEMENT"
	case errors.Is(err, ErrProviderError):
		return "PROVIDER_ERROR"
	case errors.Is(err, ErrStaleReference):
		return "STALE_REFERENCE"
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInvalidSignature):
		return "INVALID_SIGNATURE"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus memetakan sentinel ke status HTTP.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInvalidAmount):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, ErrDuplicateDisbursement):
		return fiber.StatusConflict
	case errors.Is(err, ErrStaleReference):
		return fiber.StatusConflict
	case errors.Is(err, ErrProviderError):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrInvalidSignature):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// IsUniqueViolation: cek pelanggaran unique Postgres (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}
