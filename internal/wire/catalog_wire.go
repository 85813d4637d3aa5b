package wire

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/adaptor"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	reviewHandler *adaptor.ReviewHandler,
	gate usecase.GateService,
) {
	// ==================== PUBLIC ROUTES ====================
	// Catalog browsing needs no credential.
	r.Get("/api/providers", catalogHandler.ListProviders)
	r.Get("/api/providers/{id}", catalogHandler.GetProvider)
	r.Get("/api/providers/{id}/services", catalogHandler.GetProviderServices)
	r.Get("/api/providers/{id}/reviews", reviewHandler.GetProviderReviews)

	// ==================== PROVIDER ROUTES ====================
	// Full gate: onboarded and active providers only.
	r.Route("/api/provider/services", func(r chi.Router) {
		r.Use(middleware.Gate(gate, entity.RoleProvider))
		r.Get("/", catalogHandler.ListOwnServices)
		r.Post("/", catalogHandler.CreateService)
		r.Put("/{id}", catalogHandler.UpdateService)
	})
}
