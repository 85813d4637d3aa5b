package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/entity"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/data/repository"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memBookingStore is an in-memory BookingRepository with real
// compare-and-set semantics, so transition races behave like the database
type memBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (s *memBookingStore) Create(ctx context.Context, booking *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *memBookingStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (s *memBookingStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range s.bookings {
		if booking.CustomerID == customerID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memBookingStore) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range s.bookings {
		if booking.ProviderID == providerID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memBookingStore) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	bookings, _ := s.FindByCustomerID(ctx, customerID, 0, 0)
	return int64(len(bookings)), nil
}

func (s *memBookingStore) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	bookings, _ := s.FindByProviderID(ctx, providerID, 0, 0)
	return int64(len(bookings)), nil
}

func (s *memBookingStore) UpdateStatusCAS(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingID]
	if !ok || booking.Status != from {
		return repository.ErrStatusConflict
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	return nil
}

// memServiceStore serves the catalog lookups CreateBooking needs
type memServiceStore struct {
	services map[uuid.UUID]*entity.Service
}

func (s *memServiceStore) Create(ctx context.Context, service *entity.Service) error { return nil }

func (s *memServiceStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return s.services[id], nil
}

func (s *memServiceStore) FindByProviderID(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]*entity.Service, error) {
	return nil, nil
}

func (s *memServiceStore) Update(ctx context.Context, service *entity.Service) error { return nil }

type bookingFixture struct {
	svc        BookingService
	store      *memBookingStore
	customerID uuid.UUID
	providerID uuid.UUID
	serviceID  uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	customerID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	store := newMemBookingStore()
	services := &memServiceStore{services: map[uuid.UUID]*entity.Service{
		serviceID: {
			Base:       entity.Base{ID: serviceID},
			ProviderID: providerID,
			Name:       "Deep Clean",
			Price:      150000,
			Currency:   "IDR",
			IsActive:   true,
		},
	}}
	providers := &spyProviderStore{providers: map[uuid.UUID]*entity.Provider{
		providerID: {Base: entity.Base{ID: providerID}, OnboardingCompleted: true, AccountStatus: entity.AccountStatusActive},
	}}

	repo := &repository.Repository{
		Booking:  store,
		Service:  services,
		Provider: providers,
	}

	return &bookingFixture{
		svc:        NewBookingService(repo, zap.NewNop()),
		store:      store,
		customerID: customerID,
		providerID: providerID,
		serviceID:  serviceID,
	}
}

func (f *bookingFixture) customer() *AuthorizedContext {
	return &AuthorizedContext{UserID: f.customerID, Role: entity.RoleCustomer}
}

func (f *bookingFixture) provider() *AuthorizedContext {
	return &AuthorizedContext{UserID: f.providerID, Role: entity.RoleProvider}
}

func (f *bookingFixture) seedBooking(status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		OrderCode:     "GLAM-TEST",
		CustomerID:    f.customerID,
		ProviderID:    f.providerID,
		ServiceID:     f.serviceID,
		Status:        status,
		ScheduledDate: now.AddDate(0, 0, 7),
		ScheduledTime: "10:00",
		Subtotal:      150000,
		Total:         150000,
		Currency:      "IDR",
		Address:       "Jl. Test 1",
	}
	_ = f.store.Create(context.Background(), booking)
	return booking
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.customerID, &request.CreateBookingRequest{
		ServiceID:     f.serviceID.String(),
		ScheduledDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		ScheduledTime: "14:30",
		Address:       "Jl. Melati 5",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, f.providerID.String(), resp.ProviderID)
	assert.Equal(t, 150000.0, resp.Total)
	assert.Equal(t, "IDR", resp.Currency)
	assert.True(t, resp.Actions.CanCancel)
	assert.True(t, resp.Actions.IsActive)
}

func TestCreateBooking_InactiveProvider(t *testing.T) {
	f := newBookingFixture(t)

	// suspend the provider after fixture setup
	repoProviders := map[uuid.UUID]*entity.Provider{
		f.providerID: {Base: entity.Base{ID: f.providerID}, OnboardingCompleted: true, AccountStatus: entity.AccountStatusSuspended},
	}
	f.svc = NewBookingService(&repository.Repository{
		Booking:  f.store,
		Service:  &memServiceStore{services: map[uuid.UUID]*entity.Service{f.serviceID: {Base: entity.Base{ID: f.serviceID}, ProviderID: f.providerID, IsActive: true, Currency: "IDR"}}},
		Provider: &spyProviderStore{providers: repoProviders},
	}, zap.NewNop())

	_, err := f.svc.CreateBooking(context.Background(), f.customerID, &request.CreateBookingRequest{
		ServiceID:     f.serviceID.String(),
		ScheduledDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		ScheduledTime: "14:30",
		Address:       "Jl. Melati 5",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestTransition_ProviderAdvances(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusPending)

	resp, err := f.svc.Transition(context.Background(), f.provider(), booking.ID.String(), entity.BookingStatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAccepted, resp.Status)

	stored, _ := f.store.FindByID(context.Background(), booking.ID)
	assert.Equal(t, entity.BookingStatusAccepted, stored.Status)
}

func TestTransition_CustomerCancels(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusAccepted)

	resp, err := f.svc.Transition(context.Background(), f.customer(), booking.ID.String(), entity.BookingStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.False(t, resp.Actions.IsActive)
}

func TestTransition_RoleActionSet(t *testing.T) {
	f := newBookingFixture(t)

	// a customer may not advance the booking
	booking := f.seedBooking(entity.BookingStatusPending)
	_, err := f.svc.Transition(context.Background(), f.customer(), booking.ID.String(), entity.BookingStatusAccepted)
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	// a provider may not cancel
	_, err = f.svc.Transition(context.Background(), f.provider(), booking.ID.String(), entity.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	// and the booking is untouched either way
	stored, _ := f.store.FindByID(context.Background(), booking.ID)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestTransition_IllegalEdge(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusPending)

	// skipping states is rejected and leaves the status unchanged
	_, err := f.svc.Transition(context.Background(), f.provider(), booking.ID.String(), entity.BookingStatusCompleted)

	var illegal *entity.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, entity.BookingStatusPending, illegal.From)
	assert.Equal(t, entity.BookingStatusCompleted, illegal.To)

	stored, _ := f.store.FindByID(context.Background(), booking.ID)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestTransition_Ownership(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusPending)

	stranger := &AuthorizedContext{UserID: uuid.New(), Role: entity.RoleProvider}
	_, err := f.svc.Transition(context.Background(), stranger, booking.ID.String(), entity.BookingStatusAccepted)
	assert.ErrorIs(t, err, ErrNotBookingParty)

	otherCustomer := &AuthorizedContext{UserID: uuid.New(), Role: entity.RoleCustomer}
	_, err = f.svc.Transition(context.Background(), otherCustomer, booking.ID.String(), entity.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrNotBookingParty)
}

func TestTransition_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Transition(context.Background(), f.provider(), uuid.New().String(), entity.BookingStatusAccepted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_ConcurrentRace(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusPending)

	// two concurrent accepts of the same pending booking: exactly one may win
	start := make(chan struct{})
	results := make(chan error, 2)

	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, err := f.svc.Transition(context.Background(), f.provider(), booking.ID.String(), entity.BookingStatusAccepted)
			results <- err
		}()
	}

	close(start)

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			failures++
			// the loser is told the state went stale underneath it, either
			// at write time or already at read time
			var illegal *entity.IllegalTransitionError
			staleWrite := errors.Is(err, repository.ErrStatusConflict)
			staleRead := errors.As(err, &illegal)
			assert.True(t, staleWrite || staleRead, "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, failures, "exactly one concurrent transition must lose")

	// never an intermediate or corrupted status
	stored, _ := f.store.FindByID(context.Background(), booking.ID)
	assert.Equal(t, entity.BookingStatusAccepted, stored.Status)
}

func TestUpdateStatusCAS_StaleWriteRejected(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(entity.BookingStatusPending)
	ctx := context.Background()

	// both writers hold the same pending snapshot; the second write must
	// be rejected as stale rather than silently applied
	require.NoError(t, f.store.UpdateStatusCAS(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusAccepted))
	err := f.store.UpdateStatusCAS(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusCancelled)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	stored, _ := f.store.FindByID(ctx, booking.ID)
	assert.Equal(t, entity.BookingStatusAccepted, stored.Status)
}

func TestBookingLifecycle_EndToEnd(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// customer books
	created, err := f.svc.CreateBooking(ctx, f.customerID, &request.CreateBookingRequest{
		ServiceID:     f.serviceID.String(),
		ScheduledDate: time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		ScheduledTime: "09:00",
		Address:       "Jl. Kenanga 12",
	})
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, created.Status)

	// provider accepts
	accepted, err := f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusAccepted, accepted.Status)

	// customer cannot force completion from accepted
	_, err = f.svc.Transition(ctx, f.customer(), created.ID, entity.BookingStatusCompleted)
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	// nor can the provider skip ahead
	_, err = f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusCompleted)
	var illegal *entity.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)

	// provider heads out; tracking becomes available
	onWay, err := f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusOnWay)
	require.NoError(t, err)
	assert.True(t, onWay.Actions.CanTrackProvider)
	assert.False(t, onWay.Actions.CanCancel)

	// work starts and finishes
	_, err = f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusInProgress)
	require.NoError(t, err)

	completed, err := f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusCompleted)
	require.NoError(t, err)
	assert.True(t, completed.Actions.CanLeaveReview)
	assert.False(t, completed.Actions.IsActive)

	// terminal: no further transitions
	_, err = f.svc.Transition(ctx, f.provider(), created.ID, entity.BookingStatusAccepted)
	assert.ErrorAs(t, err, &illegal)
}

func TestGetCustomerBookings_Scopes(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(entity.BookingStatusPending)
	f.seedBooking(entity.BookingStatusOnWay)
	f.seedBooking(entity.BookingStatusCompleted)
	f.seedBooking(entity.BookingStatusCancelled)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	active, err := f.svc.GetCustomerBookings(context.Background(), f.customerID, ScopeActive, page)
	require.NoError(t, err)
	assert.Len(t, active.Data, 2)
	for _, b := range active.Data {
		assert.True(t, b.Actions.IsActive)
	}

	history, err := f.svc.GetCustomerBookings(context.Background(), f.customerID, ScopeHistory, page)
	require.NoError(t, err)
	assert.Len(t, history.Data, 2)

	all, err := f.svc.GetCustomerBookings(context.Background(), f.customerID, ScopeAll, page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 4)
}
