package usecase

import (
	"context"
	"fmt"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Onboarding redirect hints returned with OnboardingIncomplete denials
const (
	ClientOnboardingPath   = "/onboarding/client"
	ProviderOnboardingPath = "/provider/onboarding"
)

type GateErrorKind int

const (
	// GateUnauthenticated: missing, malformed, expired or forged credential
	GateUnauthenticated GateErrorKind = iota
	// GateWrongRole: valid identity, but not the role this endpoint requires
	GateWrongRole
	// GateOnboardingIncomplete: genuine identity that has not finished setup
	GateOnboardingIncomplete
	// GateAccountNotEligible: provider account exists but is not active
	GateAccountNotEligible
	// GateInternal: persistence fault, never to be confused with a denial
	GateInternal
)

// GateError is the structured outcome of a failed authorization check
type GateError struct {
	Kind    GateErrorKind
	Message string
	// Redirect is set for onboarding denials so clients know where to send the user
	Redirect string
	// AccountStatus carries the actual provider status on eligibility denials,
	// so "awaiting review" can be told apart from "suspended" or "rejected"
	AccountStatus entity.AccountStatus
	err           error
}

func (e *GateError) Error() string {
	return e.Message
}

func (e *GateError) Unwrap() error {
	return e.err
}

// AuthorizedContext identifies the caller after all gate checks passed.
// It is passed explicitly to downstream handlers; the gate mutates nothing.
type AuthorizedContext struct {
	UserID uuid.UUID
	Role   entity.Role
}

// GateService runs the ordered authorization chain in front of every
// protected operation: authentication, then onboarding completeness, then
// account eligibility. Each check short-circuits; later checks never run
// after a failure. Account state is read fresh on every call so that
// administrative changes take effect on the next request.
type GateService interface {
	Authorize(ctx context.Context, authHeader string, require entity.Role) (*AuthorizedContext, *GateError)

	// AuthorizeIdentity stops after the authentication and role checks.
	// The onboarding endpoints themselves are gated with this, otherwise
	// nobody could ever complete onboarding.
	AuthorizeIdentity(ctx context.Context, authHeader string, require entity.Role) (*AuthorizedContext, *GateError)
}

// roleGate is the per-role eligibility capability. Customer and provider are
// a closed set; each role supplies its own onboarding/eligibility predicate
// instead of branching inline per check.
type roleGate interface {
	checkEligibility(ctx context.Context, id uuid.UUID) *GateError
}

type customerGate struct {
	customers repository.CustomerRepository
}

func (g *customerGate) checkEligibility(ctx context.Context, id uuid.UUID) *GateError {
	customer, err := g.customers.FindByID(ctx, id)
	if err != nil {
		return &GateError{
			Kind:    GateInternal,
			Message: "Internal server error",
			err:     fmt.Errorf("fetch customer %s: %w", id.String(), err),
		}
	}

	if customer == nil || !customer.OnboardingCompleted {
		return &GateError{
			Kind:     GateOnboardingIncomplete,
			Message:  "Complete onboarding first",
			Redirect: ClientOnboardingPath,
		}
	}

	return nil
}

type providerGate struct {
	providers repository.ProviderRepository
}

func (g *providerGate) checkEligibility(ctx context.Context, id uuid.UUID) *GateError {
	provider, err := g.providers.FindByID(ctx, id)
	if err != nil {
		return &GateError{
			Kind:    GateInternal,
			Message: "Internal server error",
			err:     fmt.Errorf("fetch provider %s: %w", id.String(), err),
		}
	}

	if provider == nil || !provider.OnboardingCompleted {
		return &GateError{
			Kind:     GateOnboardingIncomplete,
			Message:  "Complete onboarding first",
			Redirect: ProviderOnboardingPath,
		}
	}

	// Onboarded but not yet (or no longer) cleared to take bookings
	if provider.AccountStatus != entity.AccountStatusActive {
		return &GateError{
			Kind:          GateAccountNotEligible,
			Message:       "Provider account is not active",
			AccountStatus: provider.AccountStatus,
		}
	}

	return nil
}

type gateService struct {
	verifier *token.Verifier
	gates    map[entity.Role]roleGate
	log      *zap.Logger
}

func NewGateService(verifier *token.Verifier, repo *repository.Repository, log *zap.Logger) GateService {
	return &gateService{
		verifier: verifier,
		gates: map[entity.Role]roleGate{
			entity.RoleCustomer: &customerGate{customers: repo.Customer},
			entity.RoleProvider: &providerGate{providers: repo.Provider},
		},
		log: log.With(zap.String("service", "gate")),
	}
}

// authenticate runs the credential check. It is deliberately first and
// CPU-only: invalid credentials never cost a database read.
func (s *gateService) authenticate(authHeader string, require entity.Role) (*AuthorizedContext, *GateError) {
	claims, err := s.verifier.VerifyHeader(authHeader)
	if err != nil {
		return nil, &GateError{
			Kind:    GateUnauthenticated,
			Message: "Authentication required",
			err:     err,
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, &GateError{
			Kind:    GateUnauthenticated,
			Message: "Authentication required",
			err:     err,
		}
	}

	role := entity.Role(claims.Role)
	if !role.Valid() {
		s.log.Warn("Token carries unknown role", zap.String("role", claims.Role))
		return nil, &GateError{
			Kind:    GateUnauthenticated,
			Message: "Authentication required",
		}
	}

	if require != "" && role != require {
		return nil, &GateError{
			Kind:    GateWrongRole,
			Message: fmt.Sprintf("Requires %s role", require),
		}
	}

	return &AuthorizedContext{UserID: userID, Role: role}, nil
}

func (s *gateService) AuthorizeIdentity(ctx context.Context, authHeader string, require entity.Role) (*AuthorizedContext, *GateError) {
	acx, gerr := s.authenticate(authHeader, require)
	if gerr != nil {
		return nil, gerr
	}
	return acx, nil
}

func (s *gateService) Authorize(ctx context.Context, authHeader string, require entity.Role) (*AuthorizedContext, *GateError) {
	acx, gerr := s.authenticate(authHeader, require)
	if gerr != nil {
		return nil, gerr
	}

	if gerr := s.gates[acx.Role].checkEligibility(ctx, acx.UserID); gerr != nil {
		switch gerr.Kind {
		case GateInternal:
			s.log.Error("Gate persistence failure",
				zap.Error(gerr.Unwrap()),
				zap.String("user_id", acx.UserID.String()),
				zap.String("role", string(acx.Role)),
			)
		default:
			s.log.Warn("Gate denied request",
				zap.String("user_id", acx.UserID.String()),
				zap.String("role", string(acx.Role)),
				zap.String("reason", gerr.Message),
				zap.String("account_status", string(gerr.AccountStatus)),
			)
		}
		return nil, gerr
	}

	return acx, nil
}
