// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danasiswa_backend/internals/configs"
	applicationController "danasiswa_backend/internals/features/finance/applications/controller"
	budgetController "danasiswa_backend/internals/features/finance/budgets/controller"
	disbursementController "danasiswa_backend/internals/features/finance/disbursements/controller"
	fundRequestController "danasiswa_backend/internals/features/finance/fund_requests/controller"
	paymentController "danasiswa_backend/internals/features/finance/payments/controller"
	paymentService "danasiswa_backend/internals/features/finance/payments/service"
	schoolLedgerController "danasiswa_backend/internals/features/finance/school_ledgers/controller"
	"danasiswa_backend/internals/middlewares"
	"danasiswa_backend/internals/middlewares/auth"
)

// SetupRoutes merakit seluruh surface HTTP: public (health + webhook)
// dan group admin /api/a di belakang JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB, webhooks *paymentService.WebhookService) {
	/* ===== Public ===== */

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	webhookCtl := paymentController.NewWebhookController(webhooks)
	app.Post("/webhooks/midtrans", middlewares.WebhookRateLimiter(), webhookCtl.HandleMidtrans)

	/* ===== Admin (JWT) ===== */

	api := app.Group("/api/a", auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))
	aid := api.Group("/school-aid")

	// Budget envelopes
	budgetCtl := budgetController.NewBudgetAllocationController(db)
	aid.Post("/budget", budgetCtl.FundBudget)
	aid.Get("/budgets", budgetCtl.ListBudgets)
	aid.Get("/budgets/:id", budgetCtl.GetBudget)
	aid.Patch("/budgets/:id/total", budgetCtl.SetTotalBudget)

	// Sub-ledger sekolah partner
	ledgerCtl := schoolLedgerController.NewSchoolLedgerController(db)
	aid.Post("/school-budgets", ledgerCtl.AllocateSchoolBudget)
	aid.Get("/school-budgets", ledgerCtl.ListSchoolBudgets)
	aid.Get("/school-budgets/:id", ledgerCtl.GetSchoolBudget)
	aid.Patch("/school-budgets/:id/allocation", ledgerCtl.AdjustAllocation)
	aid.Post("/school-budgets/:id/refund", ledgerCtl.Refund)

	// Penarikan dana sekolah
	withdrawalCtl := schoolLedgerController.NewWithdrawalController(db)
	aid.Post("/school-budgets/:id/withdrawals", withdrawalCtl.RecordWithdrawal)
	aid.Get("/school-budgets/:id/withdrawals", withdrawalCtl.ListWithdrawals)

	// Fund request sekolah
	frCtl := fundRequestController.NewFundRequestController(db)
	aid.Post("/fund-requests", frCtl.CreateFundRequest)
	aid.Get("/fund-requests", frCtl.ListFundRequests)
	aid.Post("/fund-requests/:id/approve", frCtl.Approve)
	aid.Post("/fund-requests/:id/reject", frCtl.Reject)
	aid.Post("/fund-requests/:id/disburse", frCtl.Disburse)
	aid.Post("/fund-requests/:id/liquidate", frCtl.Liquidate)

	// Aplikasi bantuan (irisan grant)
	appCtl := applicationController.NewAidApplicationController(db)
	aid.Post("/applications", appCtl.CreateApplication)
	aid.Get("/applications", appCtl.ListApplications)
	aid.Get("/applications/:id", appCtl.GetApplication)
	aid.Post("/applications/:id/process-grant", appCtl.ProcessGrant)
	aid.Post("/applications/:id/disburse", appCtl.DisburseManual)
	aid.Post("/applications/:id/revert", appCtl.RevertOnCancel)

	// Transaksi gateway + audit webhook
	txnCtl := paymentController.NewPaymentTransactionController(db, webhooks)
	aid.Get("/transactions", txnCtl.ListTransactions)
	aid.Get("/transactions/:id", txnCtl.GetTransaction)
	aid.Post("/transactions/:id/cancel", txnCtl.CancelTransaction)
	aid.Get("/gateway-events", txnCtl.ListGatewayEvents)

	// Catatan pencairan + receipt
	disbCtl := disbursementController.NewAidDisbursementController(db)
	aid.Get("/disbursements", disbCtl.ListDisbursements)
	aid.Get("/disbursements/:id", disbCtl.GetDisbursement)
	aid.Get("/disbursements/:id/receipt", disbCtl.GetReceipt)
}
