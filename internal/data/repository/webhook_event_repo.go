package repository

import (
	"context"
	"fmt"

	"appointment-payments/internal/data/entity"
	"appointment-payments/pkg/database"

	"go.uber.org/zap"
)

type WebhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	List(ctx context.Context, limit, offset int) ([]*entity.WebhookEvent, error)
	Count(ctx context.Context) (int64, error)
}

type webhookEventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebhookEventRepository(db database.PgxIface, log *zap.Logger) WebhookEventRepository {
	return &webhookEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "webhook_event")),
	}
}

func (r *webhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (id, transaction_id, gateway_status, amount_gross,
			patient_email, doctor_id, appointment_date, appointment_time, booking_id, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.TransactionID,
		event.GatewayStatus,
		event.AmountGross,
		event.PatientEmail,
		event.DoctorID,
		event.AppointmentDate,
		event.AppointmentTime,
		event.BookingID,
		event.Outcome,
		event.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create webhook event",
			zap.Error(err),
			zap.String("transaction_id", event.TransactionID),
			zap.String("outcome", string(event.Outcome)),
		)
		return fmt.Errorf("create webhook event %s: %w", event.TransactionID, err)
	}

	return nil
}

func (r *webhookEventRepository) List(ctx context.Context, limit, offset int) ([]*entity.WebhookEvent, error) {
	query := `
		SELECT id, transaction_id, gateway_status, amount_gross,
		       patient_email, doctor_id, appointment_date, appointment_time, booking_id, outcome, created_at
		FROM webhook_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list webhook events",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var events []*entity.WebhookEvent
	for rows.Next() {
		var event entity.WebhookEvent
		err := rows.Scan(
			&event.ID,
			&event.TransactionID,
			&event.GatewayStatus,
			&event.AmountGross,
			&event.PatientEmail,
			&event.DoctorID,
			&event.AppointmentDate,
			&event.AppointmentTime,
			&event.BookingID,
			&event.Outcome,
			&event.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan webhook event row", zap.Error(err))
			return nil, fmt.Errorf("scan webhook event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func (r *webhookEventRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM webhook_events`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count webhook events", zap.Error(err))
		return 0, fmt.Errorf("count webhook events: %w", err)
	}

	return count, nil
}
