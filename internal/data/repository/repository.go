package repository

import (
	"appointment-payments/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking      BookingRepository
	WebhookEvent WebhookEventRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:      NewBookingRepository(db, log),
		WebhookEvent: NewWebhookEventRepository(db, log),
	}
}
