package model

import "gorm.io/gorm"

// swagger:model Favourite
type Favourite struct {
	UUIDBase
	UserID  string `gorm:"size:36;not null;uniqueIndex:uk_favourite_user_event" json:"user_id" validate:"required"`
	EventID string `gorm:"size:36;not null;uniqueIndex:uk_favourite_user_event" json:"event_id" validate:"required"`
}

func (Favourite) TableName() string {
	return "favourites"
}

func (f *Favourite) BeforeSave(tx *gorm.DB) error {
	f.ensureID()
	return validateStruct(f)
}
