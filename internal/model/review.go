package model

import "gorm.io/gorm"

// Review carries a snapshot of the reviewer's username and picture.
// swagger:model Review
type Review struct {
	UUIDBase
	EventID    string `gorm:"size:36;not null;index" json:"event_id" validate:"required"`
	UserID     string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	Username   string `gorm:"size:191" json:"username"`
	ProfilePic string `gorm:"size:512" json:"profile_pic"`
	Review     string `gorm:"size:2000;not null" json:"review" validate:"required"`
	Rating     int    `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeSave(tx *gorm.DB) error {
	r.ensureID()
	return validateStruct(r)
}
