package wire

import (
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/adaptor"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireOnboarding(
	r chi.Router,
	onboardingHandler *adaptor.OnboardingHandler,
	gate usecase.GateService,
) {
	// ==================== IDENTITY-ONLY ROUTES ====================
	// Onboarding endpoints authenticate but skip the completeness check;
	// otherwise the redirect target would be unreachable.
	r.With(middleware.GateIdentity(gate, entity.RoleCustomer)).
		Post("/api/onboarding/client", onboardingHandler.CompleteClient)

	r.With(middleware.GateIdentity(gate, entity.RoleProvider)).
		Post("/api/provider/onboarding", onboardingHandler.CompleteProvider)

	r.With(middleware.GateIdentity(gate, entity.RoleProvider)).
		Get("/api/provider/profile", onboardingHandler.GetProviderProfile)
}
