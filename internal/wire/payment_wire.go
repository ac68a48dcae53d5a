package wire

import (
	"appointment-payments/internal/adaptor"
	"appointment-payments/pkg/middleware"
	"appointment-payments/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	notifyHandler *adaptor.NotifyHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/payments/notify - Gateway payment notification callback.
	// Only POST is registered; chi answers anything else with 405.
	r.Post("/api/payments/notify", notifyHandler.HandleNotify)
}

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminToken(config.App.AdminToken, log))

		// GET /api/admin/bookings/{id} - Inspect reconciliation state
		r.Get("/bookings/{id}", adminHandler.GetBookingByID)

		// GET /api/admin/webhook-events - Received notification audit log
		r.Get("/webhook-events", adminHandler.GetWebhookEvents)
	})
}
