package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"homeserve/internal/domain"
)

type ServiceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) Create(s *domain.Service) error { return r.db.Create(s).Error }

func (r *ServiceRepo) FindByID(id string) (*domain.Service, error) {
	var s domain.Service
	err := r.db.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

// statsQuery joins review aggregates onto the service row. Ratings are
// averaged at query time so the derived values can never drift from the
// review rows.
func (r *ServiceRepo) statsQuery() *gorm.DB {
	return r.db.Model(&domain.Service{}).
		Select("services.*, COALESCE(AVG(reviews.rating), 0) AS rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.service_id = services.id").
		Group("services.id")
}

func (r *ServiceRepo) Detail(id string) (*domain.ServiceDetail, error) {
	var row domain.ServiceSummary
	err := r.statsQuery().Where("services.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var provider domain.User
	if err := r.db.First(&provider, "id = ?", row.ProviderID).Error; err == nil {
		row.Provider = &provider
	}

	var reviews []domain.Review
	if err := r.db.Preload("User").
		Where("service_id = ?", id).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return &domain.ServiceDetail{ServiceSummary: row, Reviews: reviews}, nil
}

func (r *ServiceRepo) Search(f domain.ServiceSearch) ([]domain.ServiceSummary, int64, error) {
	base := r.db.Model(&domain.Service{}).Where("services.is_active = ?", true)
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(services.title) LIKE ? OR LOWER(services.description) LIKE ?", like, like)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		base = base.Where("services.category = ?", c)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []domain.ServiceSummary
	err := base.
		Select("services.*, COALESCE(AVG(reviews.rating), 0) AS rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.service_id = services.id").
		Group("services.id").
		Order("services.created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	if len(rows) > 0 {
		if err := r.attachProviders(rows); err != nil {
			return nil, 0, err
		}
	}
	return rows, total, nil
}

func (r *ServiceRepo) attachProviders(rows []domain.ServiceSummary) error {
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ProviderID)
	}
	var providers []domain.User
	if err := r.db.Where("id IN ?", ids).Find(&providers).Error; err != nil {
		return err
	}
	byID := make(map[string]*domain.User, len(providers))
	for i := range providers {
		byID[providers[i].ID] = &providers[i]
	}
	for i := range rows {
		rows[i].Provider = byID[rows[i].ProviderID]
	}
	return nil
}

func (r *ServiceRepo) Update(s *domain.Service) error { return r.db.Save(s).Error }

func (r *ServiceRepo) SoftDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Service{}).Error
}
