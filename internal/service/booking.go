package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	"homeserve/internal/notify"
	"homeserve/pkg/utils"
)

type CreateBookingInput struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required,max=16"`
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

type BookingService struct {
	bookings domain.BookingRepository
	services domain.ServiceRepository
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(bookings domain.BookingRepository, services domain.ServiceRepository, n Notifier, log *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, services: services, notifier: n, log: log}
}

// List returns the caller's side of the marketplace: a homeowner sees the
// bookings they created, a provider sees bookings against their services.
func (s *BookingService) List(c Caller) ([]domain.Booking, error) {
	var (
		bs  []domain.Booking
		err error
	)
	switch c.Role {
	case domain.RoleHomeowner:
		bs, err = s.bookings.ListForHomeowner(c.ID)
	case domain.RoleProvider:
		bs, err = s.bookings.ListForProvider(c.ID)
	default:
		return nil, apperr.Forbidden("bookings are scoped to homeowners and providers")
	}
	if err != nil {
		return nil, apperr.Internal("list bookings", err)
	}
	return bs, nil
}

func (s *BookingService) Create(c Caller, in CreateBookingInput) (*domain.Booking, error) {
	if err := requireRole(c, domain.RoleHomeowner, "only homeowners can create bookings"); err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	svc, err := s.services.FindByID(in.ServiceID)
	if err != nil {
		return nil, apperr.Internal("load service", err)
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	if !svc.IsActive {
		return nil, apperr.Validation("service is not accepting bookings")
	}

	b := &domain.Booking{
		ID:          utils.NewID(),
		ServiceID:   svc.ID,
		HomeownerID: c.ID,
		Date:        date,
		Time:        in.Time,
		Notes:       in.Notes,
		Status:      domain.BookingPending,
	}
	if err := s.bookings.Create(b); err != nil {
		return nil, apperr.Internal("create booking", err)
	}
	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("service_id", svc.ID),
		zap.String("homeowner_id", c.ID),
	)

	// The row is committed; fan-out after this point is best effort.
	if s.notifier != nil {
		s.notifier.NotifyUser(svc.ProviderID, notify.Notification{
			Type:    notify.TypeNewBooking,
			Message: "You have a new booking request for " + svc.Title,
			Data:    map[string]any{"bookingId": b.ID, "serviceId": svc.ID},
		})
	}
	return s.reload(b.ID)
}

// UpdateStatus applies a provider-side lifecycle transition: confirm,
// reject or complete. Homeowner cancellation goes through Cancel.
func (s *BookingService) UpdateStatus(c Caller, id string, to domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(to) {
		return nil, apperr.Validation("invalid booking status")
	}
	if err := requireRole(c, domain.RoleProvider, "only providers can update booking status"); err != nil {
		return nil, err
	}
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if b.Service == nil || b.Service.ProviderID != c.ID {
		return nil, apperr.Forbidden("not authorized to update this booking")
	}
	if !domain.AllowedTransition(b.Status, to, domain.RoleProvider) {
		return nil, apperr.Validation(fmt.Sprintf("cannot transition booking from %s to %s", b.Status, to))
	}

	if err := s.bookings.UpdateStatus(id, to); err != nil {
		return nil, apperr.Internal("update booking", err)
	}
	b.Status = to
	s.log.Info("booking status updated",
		zap.String("booking_id", id),
		zap.String("status", string(to)),
	)
	s.notifyHomeowner(b, to)
	return b, nil
}

// Cancel is the homeowner's transition to CANCELLED. The booking row is
// kept; cancellation is a status change, never a delete.
func (s *BookingService) Cancel(c Caller, id string) (*domain.Booking, error) {
	if err := requireRole(c, domain.RoleHomeowner, "only homeowners can cancel bookings"); err != nil {
		return nil, err
	}
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if err := requireOwner(b.HomeownerID, c, "not authorized to cancel this booking"); err != nil {
		return nil, err
	}
	if !domain.AllowedTransition(b.Status, domain.BookingCancelled, domain.RoleHomeowner) {
		return nil, apperr.Validation(fmt.Sprintf("cannot cancel a %s booking", b.Status))
	}

	if err := s.bookings.UpdateStatus(id, domain.BookingCancelled); err != nil {
		return nil, apperr.Internal("update booking", err)
	}
	b.Status = domain.BookingCancelled
	s.log.Info("booking cancelled", zap.String("booking_id", id), zap.String("homeowner_id", c.ID))

	if s.notifier != nil && b.Service != nil {
		s.notifier.NotifyUser(b.Service.ProviderID, notify.Notification{
			Type:    notify.TypeBookingCancelled,
			Message: "A booking for " + b.Service.Title + " was cancelled",
			Data:    map[string]any{"bookingId": b.ID, "serviceId": b.ServiceID},
		})
	}
	return b, nil
}

func (s *BookingService) notifyHomeowner(b *domain.Booking, to domain.BookingStatus) {
	if s.notifier == nil {
		return
	}
	title := ""
	if b.Service != nil {
		title = b.Service.Title
	}
	var n notify.Notification
	switch to {
	case domain.BookingConfirmed:
		n = notify.Notification{Type: notify.TypeBookingConfirmed, Message: "Your booking for " + title + " was confirmed"}
	case domain.BookingCompleted:
		n = notify.Notification{Type: notify.TypeBookingCompleted, Message: "Your booking for " + title + " was completed"}
	case domain.BookingCancelled:
		n = notify.Notification{Type: notify.TypeBookingCancelled, Message: "Your booking for " + title + " was declined"}
	default:
		return
	}
	n.Data = map[string]any{"bookingId": b.ID, "serviceId": b.ServiceID, "status": string(to)}
	s.notifier.NotifyUser(b.HomeownerID, n)
}

func (s *BookingService) reload(id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return b, nil
}
