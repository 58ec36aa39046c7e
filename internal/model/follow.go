package model

import "gorm.io/gorm"

// Follow links a follower to a host account.
// swagger:model Follow
type Follow struct {
	UUIDBase
	Host     string `gorm:"size:36;not null;uniqueIndex:uk_follow_pair" json:"host" validate:"required"`
	Follower string `gorm:"size:36;not null;uniqueIndex:uk_follow_pair;index" json:"follower" validate:"required"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeSave(tx *gorm.DB) error {
	f.ensureID()
	if err := validateStruct(f); err != nil {
		return err
	}
	if f.Host == f.Follower {
		return NewValidationError("host", "cannot follow yourself")
	}
	return nil
}
