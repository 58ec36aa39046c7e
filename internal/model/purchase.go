package model

import "gorm.io/gorm"

// Purchase records one ticket. Username and ProfilePic are a snapshot of the
// buyer taken at purchase time and are not kept in sync with the user row.
// swagger:model Purchase
type Purchase struct {
	UUIDBase
	UserID     string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	Username   string `gorm:"size:191;not null" json:"username" validate:"required"`
	ProfilePic string `gorm:"size:512;not null;default:''" json:"profile_pic"`
	EventID    string `gorm:"size:36;not null;index" json:"event_id" validate:"required"`
}

func (Purchase) TableName() string {
	return "purchase"
}

func (p *Purchase) BeforeSave(tx *gorm.DB) error {
	p.ensureID()
	return validateStruct(p)
}
