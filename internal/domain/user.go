package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleHomeowner = "HOMEOWNER"
	RoleProvider  = "PROVIDER"
	RoleAdmin     = "ADMIN"
)

func ValidRole(r string) bool {
	return r == RoleHomeowner || r == RoleProvider || r == RoleAdmin
}

type User struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	FirstName     string         `gorm:"size:64;not null" json:"firstName"`
	LastName      string         `gorm:"size:64;not null" json:"lastName"`
	Email         string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash  string         `gorm:"size:100;not null" json:"-"`
	Role          string         `gorm:"size:16;not null;default:HOMEOWNER" json:"role"`
	Phone         string         `gorm:"size:32" json:"phone,omitempty"`
	Address       string         `gorm:"size:191" json:"address,omitempty"`
	City          string         `gorm:"size:64" json:"city,omitempty"`
	State         string         `gorm:"size:64" json:"state,omitempty"`
	ZipCode       string         `gorm:"size:16" json:"zipCode,omitempty"`
	CompanyName   string         `gorm:"size:128" json:"companyName,omitempty"`
	LicenseNumber string         `gorm:"size:64" json:"licenseNumber,omitempty"`
	Insurance     string         `gorm:"size:191" json:"insurance,omitempty"`
	IsVerified    bool           `gorm:"not null;default:false" json:"isVerified"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// ProfileUpdate holds the fields a user may change on their own record.
// Email, role and the password hash are deliberately absent.
type ProfileUpdate struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
	CompanyName   *string `json:"companyName"`
	LicenseNumber *string `json:"licenseNumber"`
	Insurance     *string `json:"insurance"`
}

// Apply merges the non-nil fields into u.
func (p ProfileUpdate) Apply(u *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.Phone, p.Phone)
	set(&u.Address, p.Address)
	set(&u.City, p.City)
	set(&u.State, p.State)
	set(&u.ZipCode, p.ZipCode)
	set(&u.CompanyName, p.CompanyName)
	set(&u.LicenseNumber, p.LicenseNumber)
	set(&u.Insurance, p.Insurance)
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(q string, offset, limit int) ([]User, int64, error)
	Update(u *User) error
	SoftDelete(id string) error
}
