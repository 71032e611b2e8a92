package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	"homeserve/internal/notify"
)

type bookingFixture struct {
	st       *fakeStore
	bookings *BookingService
	reviews  *ReviewService
	notes    *fakeNotifier

	provider  Caller
	homeowner Caller
	service   *domain.Service
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	st := newFakeStore()
	notes := &fakeNotifier{}

	provider := &domain.User{ID: "prov-1", Email: "mike@example.com", Role: domain.RoleProvider}
	homeowner := &domain.User{ID: "home-1", Email: "john@example.com", Role: domain.RoleHomeowner}
	st.users[provider.ID] = provider
	st.users[homeowner.ID] = homeowner

	svc := &domain.Service{
		ID:         "svc-1",
		ProviderID: provider.ID,
		Title:      "Professional House Cleaning",
		Category:   "Cleaning",
		Price:      150,
		IsActive:   true,
	}
	st.services[svc.ID] = svc

	return &bookingFixture{
		st: st,
		bookings: NewBookingService(
			&fakeBookingRepo{st: st}, &fakeServiceRepo{st: st}, notes, zap.NewNop()),
		reviews: NewReviewService(
			&fakeReviewRepo{st: st}, &fakeBookingRepo{st: st}, &fakeServiceRepo{st: st},
			nil, notes, zap.NewNop()),
		notes:     notes,
		provider:  Caller{ID: provider.ID, Role: domain.RoleProvider},
		homeowner: Caller{ID: homeowner.ID, Role: domain.RoleHomeowner},
		service:   svc,
	}
}

func (f *bookingFixture) book(t *testing.T) *domain.Booking {
	t.Helper()
	b, err := f.bookings.Create(f.homeowner, CreateBookingInput{
		ServiceID: f.service.ID,
		Date:      "2025-06-01",
		Time:      "10:00",
		Notes:     "back door code 1234",
	})
	require.NoError(t, err)
	return b
}

func TestBookingLifecycleHappyPath(t *testing.T) {
	f := newBookingFixture(t)

	b := f.book(t)
	assert.Equal(t, domain.BookingPending, b.Status)

	// Provider was told about the request.
	n, ok := f.notes.lastTo(notify.UserAudience(f.provider.ID))
	require.True(t, ok)
	assert.Equal(t, notify.TypeNewBooking, n.Type)

	b, err := f.bookings.UpdateStatus(f.provider, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	n, ok = f.notes.lastTo(notify.UserAudience(f.homeowner.ID))
	require.True(t, ok)
	assert.Equal(t, notify.TypeBookingConfirmed, n.Type)

	b, err = f.bookings.UpdateStatus(f.provider, b.ID, domain.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	// Homeowner reviews the completed service; derived stats follow.
	rev, err := f.reviews.Submit(context.Background(), f.homeowner, f.service.ID, SubmitReviewInput{
		Rating: 5, Comment: "Excellent service! Very professional and thorough.",
	})
	require.NoError(t, err)
	assert.True(t, rev.IsVerified)

	detail, err := (&fakeServiceRepo{st: f.st}).Detail(f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, detail.Rating)
	assert.Equal(t, int64(1), detail.ReviewCount)
}

func TestCreateBookingRequiresHomeowner(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.bookings.Create(f.provider, CreateBookingInput{
		ServiceID: f.service.ID, Date: "2025-07-01", Time: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCreateBookingUnknownService(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.bookings.Create(f.homeowner, CreateBookingInput{
		ServiceID: "missing", Date: "2025-07-01", Time: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateBookingInactiveService(t *testing.T) {
	f := newBookingFixture(t)
	f.st.services[f.service.ID].IsActive = false
	_, err := f.bookings.Create(f.homeowner, CreateBookingInput{
		ServiceID: f.service.ID, Date: "2025-07-01", Time: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateStatusOnlyOwningProvider(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)

	other := Caller{ID: "prov-2", Role: domain.RoleProvider}
	_, err := f.bookings.UpdateStatus(other, b.ID, domain.BookingConfirmed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// State untouched by the rejected attempt.
	assert.Equal(t, domain.BookingPending, f.st.bookings[b.ID].Status)
}

func TestUpdateStatusHomeownerForbidden(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)
	_, err := f.bookings.UpdateStatus(f.homeowner, b.ID, domain.BookingConfirmed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.bookings.UpdateStatus(f.provider, "missing", domain.BookingConfirmed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateStatusIllegalEdges(t *testing.T) {
	f := newBookingFixture(t)

	cases := []struct {
		name string
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{"pending straight to completed", domain.BookingPending, domain.BookingCompleted},
		{"completed is terminal", domain.BookingCompleted, domain.BookingCancelled},
		{"cancelled is terminal", domain.BookingCancelled, domain.BookingConfirmed},
		{"confirmed back to pending", domain.BookingConfirmed, domain.BookingPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := f.book(t)
			f.st.bookings[b.ID].Status = tc.from

			_, err := f.bookings.UpdateStatus(f.provider, b.ID, tc.to)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tc.from, f.st.bookings[b.ID].Status, "failed transition must not change state")
		})
	}
}

func TestCancelByOwningHomeowner(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)

	b, err := f.bookings.Cancel(f.homeowner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)

	// Cancellation is a status transition; the row survives.
	require.Contains(t, f.st.bookings, b.ID)
	assert.Equal(t, domain.BookingCancelled, f.st.bookings[b.ID].Status)

	n, ok := f.notes.lastTo(notify.UserAudience(f.provider.ID))
	require.True(t, ok)
	assert.Equal(t, notify.TypeBookingCancelled, n.Type)
}

func TestCancelConfirmedBooking(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)
	_, err := f.bookings.UpdateStatus(f.provider, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)

	got, err := f.bookings.Cancel(f.homeowner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
}

func TestCancelByNonOwnerForbidden(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)

	other := Caller{ID: "home-2", Role: domain.RoleHomeowner}
	_, err := f.bookings.Cancel(other, b.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCancelCompletedBookingFails(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)
	f.st.bookings[b.ID].Status = domain.BookingCompleted

	_, err := f.bookings.Cancel(f.homeowner, b.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, domain.BookingCompleted, f.st.bookings[b.ID].Status)
}

func TestListScopedByRole(t *testing.T) {
	f := newBookingFixture(t)
	b := f.book(t)

	own, err := f.bookings.List(f.homeowner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, b.ID, own[0].ID)
	require.NotNil(t, own[0].Service)
	assert.Equal(t, f.service.Title, own[0].Service.Title)

	against, err := f.bookings.List(f.provider)
	require.NoError(t, err)
	require.Len(t, against, 1)
	require.NotNil(t, against[0].Homeowner)
	assert.Equal(t, f.homeowner.ID, against[0].Homeowner.ID)

	stranger := Caller{ID: "home-9", Role: domain.RoleHomeowner}
	none, err := f.bookings.List(stranger)
	require.NoError(t, err)
	assert.Len(t, none, 0)

	_, err = f.bookings.List(Caller{ID: "adm-1", Role: domain.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
