package model

import "gorm.io/gorm"

// swagger:model Reaction
type Reaction struct {
	UUIDBase
	UserID     string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	Username   string `gorm:"size:191" json:"username"`
	ProfilePic string `gorm:"size:512" json:"profile_pic"`
	PostID     string `gorm:"size:36;not null;index" json:"post_id" validate:"required"`
	Reaction   string `gorm:"size:32;not null" json:"reaction" validate:"required,max=32"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeSave(tx *gorm.DB) error {
	r.ensureID()
	return validateStruct(r)
}
