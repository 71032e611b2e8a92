package domain

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ServiceID  string    `gorm:"size:36;index;not null" json:"serviceId"`
	UserID     string    `gorm:"size:36;index;not null" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	IsVerified bool      `gorm:"not null;default:false" json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Review) TableName() string { return "reviews" }

type ReviewRepository interface {
	Create(r *Review) error
	ListByService(serviceID string) ([]Review, error)
}
