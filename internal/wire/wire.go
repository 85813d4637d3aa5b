package wire

import (
	"net/http"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/adaptor"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/middleware"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/token"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies and assembles the HTTP router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	verifier := token.NewVerifier(config.JWT, logger)
	service := usecase.NewService(repo, verifier, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service.Gate, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, gate usecase.GateService, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireCatalog(r, handler.Catalog, handler.Review, gate)
	wireOnboarding(r, handler.Onboarding, gate)
	wireBooking(r, handler.Booking, handler.Review, gate)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
