package domain

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	ProviderID  string         `gorm:"size:36;index;not null" json:"providerId"`
	Provider    *User          `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Title       string         `gorm:"size:191;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:64;index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	PriceUnit   string         `gorm:"size:32" json:"priceUnit,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Service) TableName() string { return "services" }

// ServiceSummary is a Service plus its derived review stats. Rating is the
// mean of the associated review ratings (0 when there are none) and is
// computed at query time, never stored.
type ServiceSummary struct {
	Service     `gorm:"embedded"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"reviewCount"`
}

// ServiceDetail adds the full review list for the single-service read.
type ServiceDetail struct {
	ServiceSummary
	Reviews []Review `json:"reviews"`
}

// ServiceSearch are the catalog listing filters. Query matches title or
// description case-insensitively; Category is an exact match.
type ServiceSearch struct {
	Query    string
	Category string
	Page     int
	Limit    int
}

// ServicePatch holds the owner-editable fields.
type ServicePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	PriceUnit   *string  `json:"priceUnit"`
	IsActive    *bool    `json:"isActive"`
}

func (p ServicePatch) Apply(s *Service) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.PriceUnit != nil {
		s.PriceUnit = *p.PriceUnit
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

type ServiceRepository interface {
	Create(s *Service) error
	FindByID(id string) (*Service, error)
	Detail(id string) (*ServiceDetail, error)
	Search(f ServiceSearch) ([]ServiceSummary, int64, error)
	Update(s *Service) error
	SoftDelete(id string) error
}
