package model

import "gorm.io/gorm"

// swagger:model Story
type Story struct {
	UUIDBase
	UserID  string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	Story   string `gorm:"size:512;not null" json:"story" validate:"required,url"`
	Caption string `gorm:"size:255" json:"caption"`
}

func (Story) TableName() string {
	return "story"
}

func (s *Story) BeforeSave(tx *gorm.DB) error {
	s.ensureID()
	return validateStruct(s)
}
