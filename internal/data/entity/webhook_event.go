package entity

import (
	"github.com/google/uuid"
)

type WebhookOutcome string

const (
	WebhookOutcomeApplied           WebhookOutcome = "applied"
	WebhookOutcomeAlreadyReconciled WebhookOutcome = "already_reconciled"
	WebhookOutcomeNoMatch           WebhookOutcome = "no_match"
	WebhookOutcomeFailed            WebhookOutcome = "failed"
)

// WebhookEvent records one received gateway notification and what the
// reconciler did with it.
type WebhookEvent struct {
	BaseSimple
	TransactionID   string         `db:"transaction_id"`
	GatewayStatus   string         `db:"gateway_status"`
	AmountGross     string         `db:"amount_gross"`
	PatientEmail    string         `db:"patient_email"`
	DoctorID        string         `db:"doctor_id"`
	AppointmentDate string         `db:"appointment_date"`
	AppointmentTime string         `db:"appointment_time"`
	BookingID       *uuid.UUID     `db:"booking_id"`
	Outcome         WebhookOutcome `db:"outcome"`
}
