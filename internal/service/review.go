package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/core/cache"
	"homeserve/internal/domain"
	"homeserve/internal/notify"
	"homeserve/pkg/utils"
)

type SubmitReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

type ReviewService struct {
	reviews  domain.ReviewRepository
	bookings domain.BookingRepository
	services domain.ServiceRepository
	cache    *cache.Cache
	notifier Notifier
	log      *zap.Logger
}

func NewReviewService(
	reviews domain.ReviewRepository,
	bookings domain.BookingRepository,
	services domain.ServiceRepository,
	c *cache.Cache,
	n Notifier,
	log *zap.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, services: services, cache: c, notifier: n, log: log}
}

func (s *ReviewService) Submit(ctx context.Context, c Caller, serviceID string, in SubmitReviewInput) (*domain.Review, error) {
	if err := requireRole(c, domain.RoleHomeowner, "only homeowners can submit reviews"); err != nil {
		return nil, err
	}
	if in.Rating < domain.RatingMin || in.Rating > domain.RatingMax {
		return nil, apperr.Validation(fmt.Sprintf("rating must be between %d and %d", domain.RatingMin, domain.RatingMax))
	}
	svc, err := s.services.FindByID(serviceID)
	if err != nil {
		return nil, apperr.Internal("load service", err)
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}

	// Verified means the author actually completed a booking here.
	verified, err := s.bookings.HasCompleted(serviceID, c.ID)
	if err != nil {
		return nil, apperr.Internal("check bookings", err)
	}

	rev := &domain.Review{
		ID:         utils.NewID(),
		ServiceID:  serviceID,
		UserID:     c.ID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		IsVerified: verified,
	}
	if err := s.reviews.Create(rev); err != nil {
		return nil, apperr.Internal("create review", err)
	}
	s.log.Info("review submitted",
		zap.String("review_id", rev.ID),
		zap.String("service_id", serviceID),
		zap.Int("rating", in.Rating),
	)

	// The derived rating is computed on read, so a stale cached detail is
	// the only thing to clear.
	if s.cache != nil {
		s.cache.Invalidate(ctx, serviceCacheKey(serviceID))
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(svc.ProviderID, notify.Notification{
			Type:    notify.TypeNewReview,
			Message: svc.Title + " received a new review",
			Data:    map[string]any{"serviceId": serviceID, "rating": in.Rating},
		})
	}
	return rev, nil
}
