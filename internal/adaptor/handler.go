package adaptor

import (
	"appointment-payments/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Notify *NotifyHandler
	Admin  *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Notify: NewNotifyHandler(service.Reconcile, log),
		Admin:  NewAdminHandler(service.Reconcile, log),
	}
}
