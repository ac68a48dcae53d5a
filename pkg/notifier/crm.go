package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// PaymentConfirmation is the payload sent to the CRM after a booking has been
// reconciled.
type PaymentConfirmation struct {
	BookingID       string  `json:"booking_id"`
	TransactionID   string  `json:"transaction_id"`
	PaymentStatus   string  `json:"payment_status"`
	Amount          float64 `json:"amount"`
	PatientEmail    string  `json:"patient_email"`
	DoctorID        string  `json:"doctor_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
}

type envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// CRMClient posts sync events to the CRM endpoint. Delivery is best-effort:
// callers log failures and move on, they never fail the request over it.
type CRMClient struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewCRMClient(url string, timeout time.Duration, log *zap.Logger) *CRMClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &CRMClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log.With(zap.String("notifier", "crm")),
	}
}

// Enabled reports whether a CRM endpoint is configured.
func (c *CRMClient) Enabled() bool {
	return c.url != ""
}

// SendPaymentConfirmation posts the confirmation envelope to the CRM.
func (c *CRMClient) SendPaymentConfirmation(ctx context.Context, data PaymentConfirmation) error {
	if !c.Enabled() {
		c.log.Debug("CRM endpoint not configured, skipping notification",
			zap.String("transaction_id", data.TransactionID))
		return nil
	}

	body, err := json.Marshal(envelope{
		Type:      "payment_confirmation",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    "appointment-payments",
	})
	if err != nil {
		return fmt.Errorf("marshal payment confirmation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build CRM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post payment confirmation to CRM: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("CRM sync returned status %d", resp.StatusCode)
	}

	return nil
}
