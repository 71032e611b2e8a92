package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// AllowedTransition is the booking lifecycle table. The acting role decides
// which edges are reachable: the owning provider confirms, completes or
// rejects; the owning homeowner may only cancel. Ownership itself is
// checked by the caller.
func AllowedTransition(from, to BookingStatus, role string) bool {
	switch role {
	case RoleProvider:
		switch {
		case from == BookingPending && to == BookingConfirmed:
			return true
		case from == BookingPending && to == BookingCancelled:
			return true
		case from == BookingConfirmed && to == BookingCompleted:
			return true
		}
	case RoleHomeowner:
		if to == BookingCancelled && (from == BookingPending || from == BookingConfirmed) {
			return true
		}
	}
	return false
}

type Booking struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	ServiceID   string        `gorm:"size:36;index;not null" json:"serviceId"`
	Service     *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	HomeownerID string        `gorm:"size:36;index;not null" json:"homeownerId"`
	Homeowner   *User         `gorm:"foreignKey:HomeownerID" json:"homeowner,omitempty"`
	Date        time.Time     `gorm:"not null" json:"date"`
	Time        string        `gorm:"size:16;not null" json:"time"`
	Notes       string        `gorm:"type:text" json:"notes,omitempty"`
	Status      BookingStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

type BookingRepository interface {
	Create(b *Booking) error
	// FindByID loads the booking with its service, the service's provider
	// and the homeowner.
	FindByID(id string) (*Booking, error)
	ListForHomeowner(userID string) ([]Booking, error)
	ListForProvider(userID string) ([]Booking, error)
	UpdateStatus(id string, status BookingStatus) error
	// HasCompleted reports whether the homeowner has at least one COMPLETED
	// booking against the service.
	HasCompleted(serviceID, homeownerID string) (bool, error)
}
