package middleware

import (
	"net/http"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"
)

// gateDenialDetail is the machine-readable part of a denial response
type gateDenialDetail struct {
	Redirect      string `json:"redirect,omitempty"`
	AccountStatus string `json:"account_status,omitempty"`
}

// Gate runs the full authorization chain (authentication, onboarding,
// eligibility) before the handler. On success the authorized identity is
// placed on the request context; on failure the structured denial is
// written and the handler never runs.
func Gate(gate usecase.GateService, require entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acx, gerr := gate.Authorize(r.Context(), r.Header.Get("Authorization"), require)
			if gerr != nil {
				WriteGateError(w, gerr)
				return
			}

			ctx := utils.SetUserContext(r.Context(), acx.UserID, string(acx.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GateIdentity authenticates only. The onboarding endpoints use this:
// they must stay reachable for accounts that have not onboarded yet.
func GateIdentity(gate usecase.GateService, require entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acx, gerr := gate.AuthorizeIdentity(r.Context(), r.Header.Get("Authorization"), require)
			if gerr != nil {
				WriteGateError(w, gerr)
				return
			}

			ctx := utils.SetUserContext(r.Context(), acx.UserID, string(acx.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteGateError converts a gate denial into its HTTP response: 401 for
// authentication failures, 403 with detail for denials, 500 for
// infrastructure faults so clients never mistake an outage for a denial.
func WriteGateError(w http.ResponseWriter, gerr *usecase.GateError) {
	switch gerr.Kind {
	case usecase.GateUnauthenticated:
		gateDenialsTotal.WithLabelValues("unauthenticated").Inc()
		utils.ResponseUnauthorized(w, gerr.Message)

	case usecase.GateWrongRole:
		gateDenialsTotal.WithLabelValues("wrong_role").Inc()
		utils.ResponseForbidden(w, gerr.Message, nil)

	case usecase.GateOnboardingIncomplete:
		gateDenialsTotal.WithLabelValues("onboarding_incomplete").Inc()
		utils.ResponseForbidden(w, gerr.Message, gateDenialDetail{Redirect: gerr.Redirect})

	case usecase.GateAccountNotEligible:
		gateDenialsTotal.WithLabelValues("account_not_eligible").Inc()
		utils.ResponseForbidden(w, gerr.Message, gateDenialDetail{AccountStatus: string(gerr.AccountStatus)})

	default:
		gateDenialsTotal.WithLabelValues("internal").Inc()
		utils.ResponseInternalError(w, gerr.Message)
	}
}
