package repo

import (
	"gorm.io/gorm"

	"homeserve/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(rev *domain.Review) error { return r.db.Create(rev).Error }

func (r *ReviewRepo) ListByService(serviceID string) ([]domain.Review, error) {
	var revs []domain.Review
	err := r.db.Preload("User").
		Where("service_id = ?", serviceID).
		Order("created_at desc").
		Find(&revs).Error
	return revs, err
}
