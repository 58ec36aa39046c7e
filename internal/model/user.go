package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Account types. Hosts may create and manage events.
const (
	AccountHost = "H"
	AccountUser = "U"
)

const (
	GenderFemale = "F"
	GenderMale   = "M"
)

// Auth providers recorded on the user row.
const (
	AuthFacebook = "facebook"
	AuthGoogle   = "google"
	AuthEmail    = "email"
)

// swagger:model User
type User struct {
	UUIDBase
	Name          string     `gorm:"size:255" json:"name"`
	Username      string     `gorm:"size:191;not null;uniqueIndex:uk_user_username" json:"username" validate:"required,max=191"`
	Email         string     `gorm:"size:191;not null;uniqueIndex:uk_user_email" json:"email" validate:"required,email"`
	Type          string     `gorm:"size:1;not null" json:"type" validate:"required,oneof=H U"`
	PhoneNumber   string     `gorm:"size:32" json:"phone_number"`
	Bio           string     `gorm:"size:255" json:"bio"`
	Password      string     `gorm:"size:100" json:"-"`
	Heat          int        `gorm:"default:0" json:"heat"`
	ProfilePic    string     `gorm:"size:512" json:"profile_pic"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	DOB           *time.Time `gorm:"column:dob;type:date" json:"dob,omitempty"`
	Gender        *string    `gorm:"size:1" json:"gender,omitempty" validate:"omitempty,oneof=F M"`
	Location      string     `gorm:"size:255" json:"location"`
	AuthType      string     `gorm:"column:authtype;size:16;not null;default:'email'" json:"authtype" validate:"required,oneof=facebook google email"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
}

func (User) TableName() string {
	return "user"
}

func (u *User) IsHost() bool {
	return u.Type == AccountHost
}

func (u *User) Validate() error {
	return validateStruct(u)
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.ensureID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	if u.AuthType == "" {
		u.AuthType = AuthEmail
	}
	return u.Validate()
}
