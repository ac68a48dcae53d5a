package request

import (
	"net/url"
	"testing"

	"appointment-payments/pkg/utils"
)

func validForm() url.Values {
	return url.Values{
		FieldTransactionID:   {"PF12345"},
		FieldPaymentStatus:   {"COMPLETE"},
		FieldAmountGross:     {"350.00"},
		FieldDoctorID:        {"doc-1"},
		FieldPatientEmail:    {"pat@example.com"},
		FieldAppointmentDate: {"2025-03-10"},
		FieldAppointmentTime: {"09:00"},
		FieldSignature:       {"abc123"},
	}
}

func TestParseNotification(t *testing.T) {
	n := ParseNotification(validForm())

	if n.TransactionID != "PF12345" || n.PatientEmail != "pat@example.com" {
		t.Errorf("unexpected parse result: %+v", n)
	}
	if !n.Completed() {
		t.Error("Completed() = false for COMPLETE")
	}
	if errs := utils.ValidateStruct(n); len(errs) > 0 {
		t.Errorf("valid notification failed validation: %v", errs)
	}

	n.PaymentStatus = "FAILED"
	if n.Completed() {
		t.Error("Completed() = true for FAILED")
	}
}

func TestParseNotificationValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing transaction id", FieldTransactionID, ""},
		{"missing status", FieldPaymentStatus, ""},
		{"missing doctor", FieldDoctorID, ""},
		{"bad email", FieldPatientEmail, "not-an-email"},
		{"bad date", FieldAppointmentDate, "10-03-2025"},
		{"bad time", FieldAppointmentTime, "9am"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Set(tt.field, tt.value)

			n := ParseNotification(form)
			if errs := utils.ValidateStruct(n); len(errs) == 0 {
				t.Errorf("expected validation error for %s=%q", tt.field, tt.value)
			}
		})
	}
}
