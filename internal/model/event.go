package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// swagger:model Event
type Event struct {
	UUIDBase
	Name      string     `gorm:"size:255;not null" json:"name" validate:"required"`
	Price     int        `gorm:"not null" json:"price" validate:"gte=0"`
	Location  string     `gorm:"size:255" json:"location"`
	Longitude *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Date      *time.Time `gorm:"index" json:"date"`
	Time      *string    `gorm:"type:time" json:"time" validate:"omitempty,datetime=15:04:05"`
	HostID    string     `gorm:"size:36;index" json:"host_id"`
	Discount  *int       `json:"discount" validate:"omitempty,gte=0,lte=100"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	EventPic  string     `gorm:"size:512" json:"event_pic"`
	Tickets   *int       `json:"tickets" validate:"omitempty,gte=0"`
	Sold      int        `gorm:"not null;default:0" json:"sold" validate:"gte=0"`
}

func (Event) TableName() string {
	return "events"
}

// Remaining is the number of unsold tickets, or -1 when the event is uncapped.
func (e *Event) Remaining() int {
	if e.Tickets == nil {
		return -1
	}
	return *e.Tickets - e.Sold
}

func (e *Event) SoldOut() bool {
	return e.Tickets != nil && e.Sold >= *e.Tickets
}

func (e *Event) Validate() error {
	if err := validateStruct(e); err != nil {
		return err
	}
	if e.Tickets != nil && e.Sold > *e.Tickets {
		return NewValidationError("sold", "cannot exceed tickets")
	}
	return nil
}

func (e *Event) BeforeSave(tx *gorm.DB) error {
	e.ensureID()
	e.Name = strings.TrimSpace(e.Name)
	// "18:30" is accepted and stored as "18:30:00"
	if e.Time != nil && len(*e.Time) == 5 {
		t := *e.Time + ":00"
		e.Time = &t
	}
	return e.Validate()
}

// EventWithDistance is an event row annotated with its computed distance
// from a caller-supplied point.
type EventWithDistance struct {
	Event
	Distance float64 `gorm:"column:distance;->" json:"distance"`
}
