package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusOnWay,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// legalEdges is the complete edge set; every other ordered pair must be rejected
var legalEdges = map[[2]BookingStatus]bool{
	{BookingStatusPending, BookingStatusAccepted}:     true,
	{BookingStatusAccepted, BookingStatusOnWay}:       true,
	{BookingStatusOnWay, BookingStatusInProgress}:     true,
	{BookingStatusInProgress, BookingStatusCompleted}: true,
	{BookingStatusPending, BookingStatusCancelled}:    true,
	{BookingStatusAccepted, BookingStatusCancelled}:   true,
}

func TestCanTransition_AllPairs(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legalEdges[[2]BookingStatus{from, to}]
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApplyTransition_AllPairs(t *testing.T) {
	now := time.Now()

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			booking := &Booking{Status: from}
			err := booking.ApplyTransition(to, now)

			if legalEdges[[2]BookingStatus{from, to}] {
				require.NoErrorf(t, err, "%s -> %s should be legal", from, to)
				assert.Equal(t, to, booking.Status)
				assert.Equal(t, now, booking.UpdatedAt)
			} else {
				var illegal *IllegalTransitionError
				require.ErrorAsf(t, err, &illegal, "%s -> %s should be rejected", from, to)
				assert.Equal(t, from, illegal.From)
				assert.Equal(t, to, illegal.To)
				// status must be left unchanged on rejection
				assert.Equal(t, from, booking.Status)
			}
		}
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		status  BookingStatus
		next    BookingStatus
		hasNext bool
	}{
		{BookingStatusPending, BookingStatusAccepted, true},
		{BookingStatusAccepted, BookingStatusOnWay, true},
		{BookingStatusOnWay, BookingStatusInProgress, true},
		{BookingStatusInProgress, BookingStatusCompleted, true},
		{BookingStatusCompleted, "", false},
		{BookingStatusCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			next, ok := NextStatus(tt.status)
			assert.Equal(t, tt.hasNext, ok)
			if tt.hasNext {
				assert.Equal(t, tt.next, next)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusAccepted.Terminal())
	assert.False(t, BookingStatusOnWay.Terminal())
	assert.False(t, BookingStatusInProgress.Terminal())
	assert.False(t, BookingStatus("unknown").Terminal())
}

func TestDeriveActions(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   BookingActions
	}{
		{
			status: BookingStatusPending,
			want:   BookingActions{CanCancel: true, CanContactProvider: true, IsActive: true},
		},
		{
			status: BookingStatusAccepted,
			want:   BookingActions{CanCancel: true, CanContactProvider: true, IsActive: true},
		},
		{
			status: BookingStatusOnWay,
			want:   BookingActions{CanContactProvider: true, CanTrackProvider: true, IsActive: true},
		},
		{
			status: BookingStatusInProgress,
			want:   BookingActions{CanContactProvider: true, CanTrackProvider: true, IsActive: true},
		},
		{
			status: BookingStatusCompleted,
			want:   BookingActions{CanLeaveReview: true},
		},
		{
			status: BookingStatusCancelled,
			want:   BookingActions{},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveActions(tt.status))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, BookingStatus("confirmed").Valid())
	assert.False(t, BookingStatus("").Valid())
}
