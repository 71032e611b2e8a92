package repo

import (
	"errors"

	"gorm.io/gorm"

	"homeserve/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Create(b *domain.Booking) error { return r.db.Create(b).Error }

func (r *BookingRepo) FindByID(id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.
		Preload("Service").
		Preload("Service.Provider").
		Preload("Homeowner").
		First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BookingRepo) ListForHomeowner(userID string) ([]domain.Booking, error) {
	var bs []domain.Booking
	err := r.db.
		Preload("Service").
		Preload("Service.Provider").
		Preload("Homeowner").
		Where("homeowner_id = ?", userID).
		Order("created_at desc").
		Find(&bs).Error
	return bs, err
}

func (r *BookingRepo) ListForProvider(userID string) ([]domain.Booking, error) {
	var bs []domain.Booking
	err := r.db.
		Preload("Service").
		Preload("Service.Provider").
		Preload("Homeowner").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.provider_id = ?", userID).
		Order("bookings.created_at desc").
		Find(&bs).Error
	return bs, err
}

func (r *BookingRepo) UpdateStatus(id string, status domain.BookingStatus) error {
	return r.db.Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepo) HasCompleted(serviceID, homeownerID string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Booking{}).
		Where("service_id = ? AND homeowner_id = ? AND status = ?",
			serviceID, homeownerID, domain.BookingCompleted).
		Count(&n).Error
	return n > 0, err
}
