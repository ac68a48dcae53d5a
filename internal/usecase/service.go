package usecase

import (
	"time"

	"appointment-payments/internal/data/repository"
	"appointment-payments/pkg/notifier"
	"appointment-payments/pkg/payfast"
	"appointment-payments/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reconcile ReconcileService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) (*Service, error) {
	verifier, err := payfast.NewVerifier(config.Gateway.Passphrase, config.Gateway.SignatureAlgo)
	if err != nil {
		return nil, err
	}

	crm := notifier.NewCRMClient(
		config.Notifier.URL,
		time.Duration(config.Notifier.TimeoutSeconds)*time.Second,
		log,
	)

	return &Service{
		Reconcile: NewReconcileService(repo, verifier, crm, log),
	}, nil
}
