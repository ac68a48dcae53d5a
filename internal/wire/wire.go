// internal/wire/wire.go
package wire

import (
	"appointment-payments/internal/adaptor"
	"appointment-payments/internal/data/repository"
	"appointment-payments/internal/usecase"
	"appointment-payments/pkg/middleware"
	"appointment-payments/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	// Initialize services dan handlers
	service, err := usecase.NewService(repo, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Apply routes
	wirePayment(r, handler.Notify, config, logger)
	wireAdmin(r, handler.Admin, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
