package adaptor

import (
	"net/http"
	"strings"

	"appointment-payments/internal/dto/request"
	"appointment-payments/internal/usecase"
	"appointment-payments/pkg/utils"

	"go.uber.org/zap"
)

type NotifyHandler struct {
	service usecase.ReconcileService
	log     *zap.Logger
}

func NewNotifyHandler(service usecase.ReconcileService, log *zap.Logger) *NotifyHandler {
	return &NotifyHandler{
		service: service,
		log:     log.With(zap.String("handler", "notify")),
	}
}

// HandleNotify handles POST /api/payments/notify (gateway callback).
//
// The caller is the gateway's delivery system: any non-2xx response means
// "redeliver later", so every path through here has to be safe to replay.
func (h *NotifyHandler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form body", nil)
		return
	}

	notif := request.ParseNotification(r.PostForm)

	// Validate request
	if validationErrors := utils.ValidateStruct(notif); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.HandleNotification(r.Context(), notif)
	if err != nil {
		h.handleServiceError(w, err, "reconcile notification")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// handleServiceError maps reconciliation errors to the gateway status contract
func (h *NotifyHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "signature"):
		// Security-relevant: someone posted a payload we could not
		// authenticate.
		h.log.Warn(operation+" rejected - authenticity failure",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - no matching booking",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
