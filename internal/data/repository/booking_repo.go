package repository

import (
	"context"
	"fmt"

	"appointment-payments/internal/data/entity"
	"appointment-payments/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByNaturalKey(ctx context.Context, patientEmail, doctorID, appointmentDate, appointmentTime string) (*entity.Booking, error)

	// ApplyReconciliation performs the conditional reconciliation update.
	// The write only lands when gateway_payment_id is unset or already equals
	// transactionID, so a racing duplicate or a conflicting replay becomes a
	// no-op instead of a double-apply. Returns whether the row was updated.
	ApplyReconciliation(ctx context.Context, bookingID uuid.UUID, paymentStatus entity.PaymentStatus, status entity.BookingStatus, transactionID string) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, patient_email, doctor_id, appointment_date, appointment_time,
		       amount, payment_status, status, gateway_payment_id, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.PatientEmail,
		&booking.DoctorID,
		&booking.AppointmentDate,
		&booking.AppointmentTime,
		&booking.Amount,
		&booking.PaymentStatus,
		&booking.Status,
		&booking.GatewayPaymentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByNaturalKey(ctx context.Context, patientEmail, doctorID, appointmentDate, appointmentTime string) (*entity.Booking, error) {
	// The gateway callback only carries passthrough fields, so the booking is
	// located by its natural key. All four predicates are required; LIMIT 1
	// caps the result even if the key were ever duplicated.
	query := `
		SELECT id, patient_email, doctor_id, appointment_date, appointment_time,
		       amount, payment_status, status, gateway_payment_id, created_at, updated_at
		FROM bookings
		WHERE patient_email = $1 AND doctor_id = $2
		  AND appointment_date = $3 AND appointment_time = $4
		LIMIT 1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, patientEmail, doctorID, appointmentDate, appointmentTime).Scan(
		&booking.ID,
		&booking.PatientEmail,
		&booking.DoctorID,
		&booking.AppointmentDate,
		&booking.AppointmentTime,
		&booking.Amount,
		&booking.PaymentStatus,
		&booking.Status,
		&booking.GatewayPaymentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by natural key",
			zap.Error(err),
			zap.String("patient_email", patientEmail),
			zap.String("doctor_id", doctorID),
			zap.String("appointment_date", appointmentDate),
			zap.String("appointment_time", appointmentTime),
		)
		return nil, fmt.Errorf("find booking by natural key %s/%s/%s %s: %w",
			patientEmail, doctorID, appointmentDate, appointmentTime, err)
	}

	return &booking, nil
}

func (r *bookingRepository) ApplyReconciliation(ctx context.Context, bookingID uuid.UUID, paymentStatus entity.PaymentStatus, status entity.BookingStatus, transactionID string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = $2, status = $3, gateway_payment_id = $4, updated_at = NOW()
		WHERE id = $1
		  AND (gateway_payment_id IS NULL OR gateway_payment_id = $4)
	`

	result, err := r.db.Exec(ctx, query, bookingID, paymentStatus, status, transactionID)
	if err != nil {
		r.log.Error("Failed to apply reconciliation",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("transaction_id", transactionID),
			zap.String("payment_status", string(paymentStatus)),
		)
		return false, fmt.Errorf("apply reconciliation for booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
