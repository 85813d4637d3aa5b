package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/token"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// spyCustomerStore counts lookups so tests can prove the gate never touched
// the store on an authentication failure
type spyCustomerStore struct {
	calls     int
	customers map[uuid.UUID]*entity.Customer
	err       error
}

func (s *spyCustomerStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.customers[id], nil
}

func (s *spyCustomerStore) Upsert(ctx context.Context, customer *entity.Customer) error {
	return nil
}

type spyProviderStore struct {
	calls     int
	providers map[uuid.UUID]*entity.Provider
	err       error
}

func (s *spyProviderStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.providers[id], nil
}

func (s *spyProviderStore) FindActive(ctx context.Context, limit, offset int) ([]*entity.Provider, error) {
	return nil, nil
}

func (s *spyProviderStore) CountActive(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *spyProviderStore) Upsert(ctx context.Context, provider *entity.Provider) error {
	return nil
}

func newGateFixture(t *testing.T, customers *spyCustomerStore, providers *spyProviderStore) (GateService, *token.Verifier) {
	t.Helper()

	verifier := token.NewVerifier(utils.JWTConfig{Secret: "gate-test-secret", ExpiryHours: 1}, zap.NewNop())
	repo := &repository.Repository{
		Customer: customers,
		Provider: providers,
	}

	return NewGateService(verifier, repo, zap.NewNop()), verifier
}

func bearer(t *testing.T, verifier *token.Verifier, userID uuid.UUID, role entity.Role) string {
	t.Helper()

	signed, _, err := verifier.Issue(userID, string(role))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestAuthorize_MissingOrMalformedCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := &spyCustomerStore{}
			providers := &spyProviderStore{}
			gate, _ := newGateFixture(t, customers, providers)

			acx, gerr := gate.Authorize(context.Background(), tt.header, "")

			assert.Nil(t, acx)
			require.NotNil(t, gerr)
			assert.Equal(t, GateUnauthenticated, gerr.Kind)
			// authentication failed, so the account stores must never be consulted
			assert.Zero(t, customers.calls)
			assert.Zero(t, providers.calls)
		})
	}
}

func TestAuthorize_ExpiredCredential(t *testing.T) {
	customers := &spyCustomerStore{}
	providers := &spyProviderStore{}
	gate, verifier := newGateFixture(t, customers, providers)

	header := bearer(t, verifier, uuid.New(), entity.RoleCustomer)

	// jump the clock past expiry
	verifier.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	acx, gerr := gate.Authorize(context.Background(), header, "")

	assert.Nil(t, acx)
	require.NotNil(t, gerr)
	assert.Equal(t, GateUnauthenticated, gerr.Kind)
	assert.Zero(t, customers.calls)
	assert.Zero(t, providers.calls)
}

func TestAuthorize_WrongSigningKey(t *testing.T) {
	customers := &spyCustomerStore{}
	providers := &spyProviderStore{}
	gate, _ := newGateFixture(t, customers, providers)

	forger := token.NewVerifier(utils.JWTConfig{Secret: "some-other-secret", ExpiryHours: 1}, zap.NewNop())
	header := bearer(t, forger, uuid.New(), entity.RoleCustomer)

	acx, gerr := gate.Authorize(context.Background(), header, "")

	assert.Nil(t, acx)
	require.NotNil(t, gerr)
	assert.Equal(t, GateUnauthenticated, gerr.Kind)
	assert.Zero(t, customers.calls)
}

func TestAuthorize_CustomerOnboardingIncomplete(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		customer *entity.Customer
	}{
		{"no customer record", nil},
		{"onboarding not completed", &entity.Customer{Base: entity.Base{ID: userID}, OnboardingCompleted: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := &spyCustomerStore{customers: map[uuid.UUID]*entity.Customer{}}
			if tt.customer != nil {
				customers.customers[userID] = tt.customer
			}
			gate, verifier := newGateFixture(t, customers, &spyProviderStore{})

			acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, userID, entity.RoleCustomer), entity.RoleCustomer)

			assert.Nil(t, acx)
			require.NotNil(t, gerr)
			assert.Equal(t, GateOnboardingIncomplete, gerr.Kind)
			assert.Equal(t, ClientOnboardingPath, gerr.Redirect)
		})
	}
}

func TestAuthorize_ProviderOnboardingIncomplete(t *testing.T) {
	userID := uuid.New()
	providers := &spyProviderStore{providers: map[uuid.UUID]*entity.Provider{
		userID: {Base: entity.Base{ID: userID}, OnboardingCompleted: false},
	}}
	gate, verifier := newGateFixture(t, &spyCustomerStore{}, providers)

	acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, userID, entity.RoleProvider), entity.RoleProvider)

	assert.Nil(t, acx)
	require.NotNil(t, gerr)
	assert.Equal(t, GateOnboardingIncomplete, gerr.Kind)
	assert.Equal(t, ProviderOnboardingPath, gerr.Redirect)
}

func TestAuthorize_ProviderNotEligible(t *testing.T) {
	for _, status := range []entity.AccountStatus{
		entity.AccountStatusPending,
		entity.AccountStatusSuspended,
		entity.AccountStatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			userID := uuid.New()
			providers := &spyProviderStore{providers: map[uuid.UUID]*entity.Provider{
				userID: {Base: entity.Base{ID: userID}, OnboardingCompleted: true, AccountStatus: status},
			}}
			gate, verifier := newGateFixture(t, &spyCustomerStore{}, providers)

			acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, userID, entity.RoleProvider), entity.RoleProvider)

			assert.Nil(t, acx)
			require.NotNil(t, gerr)
			assert.Equal(t, GateAccountNotEligible, gerr.Kind)
			// the exact status must be preserved so clients can differentiate
			assert.Equal(t, status, gerr.AccountStatus)
		})
	}
}

func TestAuthorize_PersistenceFaultIsNotADenial(t *testing.T) {
	userID := uuid.New()
	customers := &spyCustomerStore{err: errors.New("connection reset")}
	gate, verifier := newGateFixture(t, customers, &spyProviderStore{})

	acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, userID, entity.RoleCustomer), entity.RoleCustomer)

	assert.Nil(t, acx)
	require.NotNil(t, gerr)
	assert.Equal(t, GateInternal, gerr.Kind)
	assert.Empty(t, gerr.Redirect)
}

func TestAuthorize_Success(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()

	customers := &spyCustomerStore{customers: map[uuid.UUID]*entity.Customer{
		customerID: {Base: entity.Base{ID: customerID}, OnboardingCompleted: true},
	}}
	providers := &spyProviderStore{providers: map[uuid.UUID]*entity.Provider{
		providerID: {Base: entity.Base{ID: providerID}, OnboardingCompleted: true, AccountStatus: entity.AccountStatusActive},
	}}
	gate, verifier := newGateFixture(t, customers, providers)

	acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, customerID, entity.RoleCustomer), entity.RoleCustomer)
	require.Nil(t, gerr)
	assert.Equal(t, customerID, acx.UserID)
	assert.Equal(t, entity.RoleCustomer, acx.Role)

	acx, gerr = gate.Authorize(context.Background(), bearer(t, verifier, providerID, entity.RoleProvider), entity.RoleProvider)
	require.Nil(t, gerr)
	assert.Equal(t, providerID, acx.UserID)
	assert.Equal(t, entity.RoleProvider, acx.Role)

	// every authorization re-reads state, nothing is cached across calls
	assert.Equal(t, 1, customers.calls)
	assert.Equal(t, 1, providers.calls)

	_, _ = gate.Authorize(context.Background(), bearer(t, verifier, customerID, entity.RoleCustomer), entity.RoleCustomer)
	assert.Equal(t, 2, customers.calls)
}

func TestAuthorize_RoleRequirement(t *testing.T) {
	customerID := uuid.New()
	customers := &spyCustomerStore{customers: map[uuid.UUID]*entity.Customer{
		customerID: {Base: entity.Base{ID: customerID}, OnboardingCompleted: true},
	}}
	gate, verifier := newGateFixture(t, customers, &spyProviderStore{})

	// a customer token must not pass a provider-only gate
	acx, gerr := gate.Authorize(context.Background(), bearer(t, verifier, customerID, entity.RoleCustomer), entity.RoleProvider)

	assert.Nil(t, acx)
	require.NotNil(t, gerr)
	assert.Equal(t, GateWrongRole, gerr.Kind)
	// short-circuited before any store read
	assert.Zero(t, customers.calls)
}

func TestAuthorizeIdentity_SkipsOnboardingCheck(t *testing.T) {
	userID := uuid.New()
	customers := &spyCustomerStore{}
	gate, verifier := newGateFixture(t, customers, &spyProviderStore{})

	// no customer record exists yet; identity-only authorization must still pass
	acx, gerr := gate.AuthorizeIdentity(context.Background(), bearer(t, verifier, userID, entity.RoleCustomer), entity.RoleCustomer)

	require.Nil(t, gerr)
	assert.Equal(t, userID, acx.UserID)
	assert.Zero(t, customers.calls)
}
