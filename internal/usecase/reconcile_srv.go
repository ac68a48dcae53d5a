package usecase

import (
	"context"
	"fmt"
	"time"

	"appointment-payments/internal/data/entity"
	"appointment-payments/internal/data/repository"
	"appointment-payments/internal/dto/request"
	"appointment-payments/internal/dto/response"
	"appointment-payments/pkg/notifier"
	"appointment-payments/pkg/payfast"
	"appointment-payments/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReconcileService interface {
	// HandleNotification converts one gateway notification into a
	// deterministic, idempotent update of exactly one booking.
	HandleNotification(ctx context.Context, notif *request.PaymentNotification) (*response.ReconcileResponse, error)

	// Admin read model
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingReconciliationResponse, error)
	GetWebhookEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WebhookEventResponse], error)
}

type reconcileService struct {
	repo     *repository.Repository
	verifier *payfast.Verifier
	crm      *notifier.CRMClient
	log      *zap.Logger
}

func NewReconcileService(repo *repository.Repository, verifier *payfast.Verifier, crm *notifier.CRMClient, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo:     repo,
		verifier: verifier,
		crm:      crm,
		log:      log.With(zap.String("service", "reconcile")),
	}
}

func (s *reconcileService) HandleNotification(ctx context.Context, notif *request.PaymentNotification) (*response.ReconcileResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(notif); len(errs) > 0 {
		s.log.Warn("Notification validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Authenticity comes first: nothing is trusted, matched or mutated until
	// the signature checks out against the shared passphrase.
	if err := s.verifier.Verify(notif.Fields(), notif.Signature); err != nil {
		s.log.Warn("Rejected notification with bad signature",
			zap.Error(err),
			zap.String("transaction_id", notif.TransactionID),
			zap.String("patient_email", notif.PatientEmail),
		)
		return nil, fmt.Errorf("invalid signature for transaction %s: %w", notif.TransactionID, err)
	}

	// The callback only carries passthrough fields, never the booking id, so
	// the booking is located by its natural key.
	booking, err := s.repo.Booking.FindByNaturalKey(ctx,
		notif.PatientEmail, notif.DoctorID, notif.AppointmentDate, notif.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("match notification %s: %w", notif.TransactionID, err)
	}
	if booking == nil {
		s.recordEvent(ctx, notif, nil, entity.WebhookOutcomeNoMatch)
		return nil, fmt.Errorf("booking not found for notification %s", notif.TransactionID)
	}

	paymentStatus := entity.PaymentStatusFailed
	bookingStatus := entity.BookingStatusCancelled
	if notif.Completed() {
		paymentStatus = entity.PaymentStatusCompleted
		bookingStatus = entity.BookingStatusConfirmed
	}

	applied, err := s.repo.Booking.ApplyReconciliation(ctx, booking.ID, paymentStatus, bookingStatus, notif.TransactionID)
	if err != nil {
		s.recordEvent(ctx, notif, &booking.ID, entity.WebhookOutcomeFailed)
		return nil, fmt.Errorf("reconcile booking %s: %w", booking.ID.String(), err)
	}

	if !applied {
		// The booking was already reconciled under a different transaction id.
		// The gateway gets a success so it stops redelivering; the booking is
		// left untouched.
		s.log.Info("Skipped already reconciled booking",
			zap.String("booking_id", booking.ID.String()),
			zap.String("transaction_id", notif.TransactionID),
		)
		s.recordEvent(ctx, notif, &booking.ID, entity.WebhookOutcomeAlreadyReconciled)

		return &response.ReconcileResponse{
			BookingID:     booking.ID.String(),
			TransactionID: notif.TransactionID,
			PaymentStatus: booking.PaymentStatus,
			Status:        booking.Status,
			Applied:       false,
		}, nil
	}

	s.log.Info("Booking reconciled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("transaction_id", notif.TransactionID),
		zap.String("payment_status", string(paymentStatus)),
	)
	s.recordEvent(ctx, notif, &booking.ID, entity.WebhookOutcomeApplied)

	// Best-effort CRM sync. A failure here must never fail the request or
	// roll back the booking update.
	if err := s.crm.SendPaymentConfirmation(ctx, notifier.PaymentConfirmation{
		BookingID:       booking.ID.String(),
		TransactionID:   notif.TransactionID,
		PaymentStatus:   string(paymentStatus),
		Amount:          booking.Amount,
		PatientEmail:    booking.PatientEmail,
		DoctorID:        booking.DoctorID,
		AppointmentDate: booking.AppointmentDate,
		AppointmentTime: booking.AppointmentTime,
	}); err != nil {
		s.log.Warn("CRM notification failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("transaction_id", notif.TransactionID),
		)
	}

	return &response.ReconcileResponse{
		BookingID:     booking.ID.String(),
		TransactionID: notif.TransactionID,
		PaymentStatus: paymentStatus,
		Status:        bookingStatus,
		Applied:       true,
	}, nil
}

// recordEvent appends the notification to the audit log. The insert is
// best-effort: a failure is logged and never changes the reconciliation
// outcome.
func (s *reconcileService) recordEvent(ctx context.Context, notif *request.PaymentNotification, bookingID *uuid.UUID, outcome entity.WebhookOutcome) {
	event := &entity.WebhookEvent{
		TransactionID:   notif.TransactionID,
		GatewayStatus:   notif.PaymentStatus,
		AmountGross:     notif.AmountGross,
		PatientEmail:    notif.PatientEmail,
		DoctorID:        notif.DoctorID,
		AppointmentDate: notif.AppointmentDate,
		AppointmentTime: notif.AppointmentTime,
		BookingID:       bookingID,
		Outcome:         outcome,
	}
	event.ID = uuid.New()
	event.CreatedAt = time.Now()

	if err := s.repo.WebhookEvent.Create(ctx, event); err != nil {
		s.log.Warn("Failed to record webhook event",
			zap.Error(err),
			zap.String("transaction_id", notif.TransactionID),
			zap.String("outcome", string(outcome)),
		)
	}
}

func (s *reconcileService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingReconciliationResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return &response.BookingReconciliationResponse{
		ID:               booking.ID.String(),
		PatientEmail:     booking.PatientEmail,
		DoctorID:         booking.DoctorID,
		AppointmentDate:  booking.AppointmentDate,
		AppointmentTime:  booking.AppointmentTime,
		Amount:           booking.Amount,
		PaymentStatus:    booking.PaymentStatus,
		Status:           booking.Status,
		GatewayPaymentID: booking.GatewayPaymentID,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}, nil
}

func (s *reconcileService) GetWebhookEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WebhookEventResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	events, err := s.repo.WebhookEvent.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}

	total, err := s.repo.WebhookEvent.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count webhook events: %w", err)
	}

	items := make([]response.WebhookEventResponse, 0, len(events))
	for _, event := range events {
		item := response.WebhookEventResponse{
			ID:              event.ID.String(),
			TransactionID:   event.TransactionID,
			GatewayStatus:   event.GatewayStatus,
			AmountGross:     event.AmountGross,
			PatientEmail:    event.PatientEmail,
			DoctorID:        event.DoctorID,
			AppointmentDate: event.AppointmentDate,
			AppointmentTime: event.AppointmentTime,
			Outcome:         event.Outcome,
			CreatedAt:       event.CreatedAt,
		}
		if event.BookingID != nil {
			id := event.BookingID.String()
			item.BookingID = &id
		}
		items = append(items, item)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
