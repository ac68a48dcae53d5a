package request

import (
	"net/url"
)

// Gateway form field names. The gateway echoes the four passthrough fields
// back unchanged, which is how the notification is matched to a booking.
const (
	FieldTransactionID   = "gateway_transaction_id"
	FieldPaymentStatus   = "payment_status"
	FieldAmountGross     = "amount_gross"
	FieldDoctorID        = "doctor_id"
	FieldPatientEmail    = "patient_email"
	FieldAppointmentDate = "appointment_date"
	FieldAppointmentTime = "appointment_time"
	FieldSignature       = "signature"
)

// PaymentStatusComplete is the only status code the gateway sends for a
// successful payment. Every other value is treated as a failure.
const PaymentStatusComplete = "COMPLETE"

type PaymentNotification struct {
	TransactionID   string `validate:"required"`
	PaymentStatus   string `validate:"required"`
	AmountGross     string
	DoctorID        string `validate:"required"`
	PatientEmail    string `validate:"required,email"`
	AppointmentDate string `validate:"required,datetime=2006-01-02"`
	AppointmentTime string `validate:"required,datetime=15:04"`
	Signature       string

	fields url.Values
}

// ParseNotification maps the url-encoded gateway callback into a typed
// notification. The full field set is retained for signature verification,
// since the gateway signs every posted field, not just the recognized ones.
func ParseNotification(form url.Values) *PaymentNotification {
	return &PaymentNotification{
		TransactionID:   form.Get(FieldTransactionID),
		PaymentStatus:   form.Get(FieldPaymentStatus),
		AmountGross:     form.Get(FieldAmountGross),
		DoctorID:        form.Get(FieldDoctorID),
		PatientEmail:    form.Get(FieldPatientEmail),
		AppointmentDate: form.Get(FieldAppointmentDate),
		AppointmentTime: form.Get(FieldAppointmentTime),
		Signature:       form.Get(FieldSignature),
		fields:          form,
	}
}

// Fields returns the raw posted fields, signature included.
func (n *PaymentNotification) Fields() url.Values {
	return n.fields
}

// Completed reports whether the gateway considers the payment successful.
func (n *PaymentNotification) Completed() bool {
	return n.PaymentStatus == PaymentStatusComplete
}
