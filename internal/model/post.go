package model

import "gorm.io/gorm"

// swagger:model Post
type Post struct {
	UUIDBase
	UserID  string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	Content string `gorm:"size:2000" json:"content"`
	Pic1    string `gorm:"size:512" json:"pic1,omitempty" validate:"omitempty,url"`
	Pic2    string `gorm:"size:512" json:"pic2,omitempty" validate:"omitempty,url"`
	Pic3    string `gorm:"size:512" json:"pic3,omitempty" validate:"omitempty,url"`
	Pic4    string `gorm:"size:512" json:"pic4,omitempty" validate:"omitempty,url"`
}

func (Post) TableName() string {
	return "posts"
}

// SetPictures fills pic1..pic4 in order; at most four are kept.
func (p *Post) SetPictures(urls []string) error {
	if len(urls) > 4 {
		return NewValidationError("pictures", "at most 4 pictures per post")
	}
	slots := []*string{&p.Pic1, &p.Pic2, &p.Pic3, &p.Pic4}
	for i, slot := range slots {
		*slot = ""
		if i < len(urls) {
			*slot = urls[i]
		}
	}
	return nil
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.ensureID()
	if p.Content == "" && p.Pic1 == "" {
		return NewValidationError("content", "a post needs content or a picture")
	}
	return validateStruct(p)
}
