package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeserve/internal/apperr"
	"homeserve/internal/notify"
)

func TestSubmitReviewRatingBounds(t *testing.T) {
	f := newBookingFixture(t)
	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := f.reviews.Submit(context.Background(), f.homeowner, f.service.ID, SubmitReviewInput{Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	assert.Empty(t, f.st.reviews)
}

func TestSubmitReviewRequiresHomeowner(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.reviews.Submit(context.Background(), f.provider, f.service.ID, SubmitReviewInput{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestSubmitReviewUnknownService(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.reviews.Submit(context.Background(), f.homeowner, "missing", SubmitReviewInput{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSubmitReviewUnverifiedWithoutCompletedBooking(t *testing.T) {
	f := newBookingFixture(t)
	rev, err := f.reviews.Submit(context.Background(), f.homeowner, f.service.ID, SubmitReviewInput{
		Rating: 4, Comment: "Great work, but a bit pricey.",
	})
	require.NoError(t, err)
	assert.False(t, rev.IsVerified)
}

func TestSubmitReviewNotifiesProvider(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.reviews.Submit(context.Background(), f.homeowner, f.service.ID, SubmitReviewInput{Rating: 3})
	require.NoError(t, err)

	n, ok := f.notes.lastTo(notify.UserAudience(f.provider.ID))
	require.True(t, ok)
	assert.Equal(t, notify.TypeNewReview, n.Type)
	assert.Equal(t, 3, n.Data["rating"])
}

func TestDerivedRatingIsMeanOfReviews(t *testing.T) {
	f := newBookingFixture(t)
	repo := &fakeServiceRepo{st: f.st}

	// No reviews yet: rating 0, count 0.
	d, err := repo.Detail(f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Rating)
	assert.Equal(t, int64(0), d.ReviewCount)

	for _, rating := range []int{5, 4, 3} {
		_, err := f.reviews.Submit(context.Background(), f.homeowner, f.service.ID, SubmitReviewInput{Rating: rating})
		require.NoError(t, err)
	}

	d, err = repo.Detail(f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, d.Rating)
	assert.Equal(t, int64(3), d.ReviewCount)
}
