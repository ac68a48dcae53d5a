package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Booking is created by the booking flow with payment_status = pending.
// This service only ever updates payment_status, status and gateway_payment_id.
type Booking struct {
	Base
	PatientEmail     string        `db:"patient_email"`
	DoctorID         string        `db:"doctor_id"`
	AppointmentDate  string        `db:"appointment_date"`
	AppointmentTime  string        `db:"appointment_time"`
	Amount           float64       `db:"amount"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	Status           BookingStatus `db:"status"`
	GatewayPaymentID *string       `db:"gateway_payment_id"`
}
