package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusOnWay      BookingStatus = "on_way"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// allowedTransitions is the whole lifecycle as data: adding a state or an
// edge is a table change, not new branching. Terminal states map to an
// empty slice.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAccepted, BookingStatusCancelled},
	BookingStatusAccepted:   {BookingStatusOnWay, BookingStatusCancelled},
	BookingStatusOnWay:      {BookingStatusInProgress},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// forwardPath drives NextStatus: the single canonical advance per state
var forwardPath = map[BookingStatus]BookingStatus{
	BookingStatusPending:    BookingStatusAccepted,
	BookingStatusAccepted:   BookingStatusOnWay,
	BookingStatusOnWay:      BookingStatusInProgress,
	BookingStatusInProgress: BookingStatusCompleted,
}

func (s BookingStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s BookingStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0 && s.Valid()
}

// CanTransition reports whether from->to is an edge of the lifecycle graph
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatus returns the next state on the canonical forward path,
// or false for terminal states.
func NextStatus(s BookingStatus) (BookingStatus, bool) {
	next, ok := forwardPath[s]
	return next, ok
}

// ------------- Derived action predicates -------------
// Pure functions of status, used to decide which controls the client may show.

// CanCancel: only before the provider is en route or working
func (s BookingStatus) CanCancel() bool {
	return s == BookingStatusPending || s == BookingStatusAccepted
}

// CanContactProvider: communication only makes sense while the engagement is live
func (s BookingStatus) CanContactProvider() bool {
	return s != BookingStatusCancelled && s != BookingStatusCompleted
}

// CanTrackProvider: tracking starts once movement or work has begun
func (s BookingStatus) CanTrackProvider() bool {
	return s == BookingStatusOnWay || s == BookingStatusInProgress
}

// CanLeaveReview: reviews require a finished service
func (s BookingStatus) CanLeaveReview() bool {
	return s == BookingStatusCompleted
}

// IsActive splits "current" from "historical" booking lists
func (s BookingStatus) IsActive() bool {
	return s != BookingStatusCompleted && s != BookingStatusCancelled
}

// BookingActions is the availability matrix for one booking as surfaced to clients
type BookingActions struct {
	CanCancel          bool `json:"can_cancel"`
	CanContactProvider bool `json:"can_contact_provider"`
	CanTrackProvider   bool `json:"can_track_provider"`
	CanLeaveReview     bool `json:"can_leave_review"`
	IsActive           bool `json:"is_active"`
}

func DeriveActions(s BookingStatus) BookingActions {
	return BookingActions{
		CanCancel:          s.CanCancel(),
		CanContactProvider: s.CanContactProvider(),
		CanTrackProvider:   s.CanTrackProvider(),
		CanLeaveReview:     s.CanLeaveReview(),
		IsActive:           s.IsActive(),
	}
}

// IllegalTransitionError rejects a status change that is not an edge of the
// lifecycle graph. The booking is left untouched.
type IllegalTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal booking transition %s -> %s", e.From, e.To)
}

type Booking struct {
	Base
	OrderCode     string        `db:"order_code"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	ProviderID    uuid.UUID     `db:"provider_id"`
	ServiceID     uuid.UUID     `db:"service_id"`
	Status        BookingStatus `db:"status"`
	ScheduledDate time.Time     `db:"scheduled_date"`
	ScheduledTime string        `db:"scheduled_time"`
	Subtotal      float64       `db:"subtotal"`
	Total         float64       `db:"total"`
	Currency      string        `db:"currency"`
	Address       string        `db:"address"`
	Notes         *string       `db:"notes"`
}

// ApplyTransition moves the booking to the requested status if the edge
// exists, refreshing UpdatedAt. Fails closed: a non-adjacent request returns
// IllegalTransitionError and leaves the booking unchanged. Persistence must
// additionally apply the change with compare-and-set on the prior status.
func (b *Booking) ApplyTransition(to BookingStatus, now time.Time) error {
	if !CanTransition(b.Status, to) {
		return &IllegalTransitionError{From: b.Status, To: to}
	}

	b.Status = to
	b.UpdatedAt = now
	return nil
}
