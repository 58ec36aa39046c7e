package model

import "gorm.io/gorm"

// Comment targets either an event (EventID) or a post (PostID), never both.
// swagger:model Comment
type Comment struct {
	UUIDBase
	EventID string `gorm:"size:36;index" json:"event_id,omitempty"`
	UserID  string `gorm:"size:36;index" json:"user_id"`
	Content string `gorm:"size:2000;not null" json:"content" validate:"required"`
	PostID  string `gorm:"column:post;size:36;not null;default:'';index" json:"post,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if (c.EventID == "") == (c.PostID == "") {
		return NewValidationError("post", "comment must target exactly one of event_id or post")
	}
	return nil
}

func (c *Comment) BeforeSave(tx *gorm.DB) error {
	c.ensureID()
	return c.Validate()
}
