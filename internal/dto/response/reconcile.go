package response

import (
	"time"

	"appointment-payments/internal/data/entity"
)

type ReconcileResponse struct {
	BookingID     string               `json:"booking_id"`
	TransactionID string               `json:"transaction_id"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	Status        entity.BookingStatus `json:"status"`
	Applied       bool                 `json:"applied"`
}

type BookingReconciliationResponse struct {
	ID               string               `json:"id"`
	PatientEmail     string               `json:"patient_email"`
	DoctorID         string               `json:"doctor_id"`
	AppointmentDate  string               `json:"appointment_date"`
	AppointmentTime  string               `json:"appointment_time"`
	Amount           float64              `json:"amount"`
	PaymentStatus    entity.PaymentStatus `json:"payment_status"`
	Status           entity.BookingStatus `json:"status"`
	GatewayPaymentID *string              `json:"gateway_payment_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type WebhookEventResponse struct {
	ID              string                `json:"id"`
	TransactionID   string                `json:"transaction_id"`
	GatewayStatus   string                `json:"gateway_status"`
	AmountGross     string                `json:"amount_gross"`
	PatientEmail    string                `json:"patient_email"`
	DoctorID        string                `json:"doctor_id"`
	AppointmentDate string                `json:"appointment_date"`
	AppointmentTime string                `json:"appointment_time"`
	BookingID       *string               `json:"booking_id,omitempty"`
	Outcome         entity.WebhookOutcome `json:"outcome"`
	CreatedAt       time.Time             `json:"created_at"`
}
