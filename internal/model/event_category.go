package model

import (
	"sort"

	"gorm.io/gorm"
)

// CategoryTags are the one-hot tag columns of event_category, in column order.
var CategoryTags = []string{
	"party",
	"convention",
	"trade",
	"seminar",
	"meeting",
	"business",
	"wedding",
	"corporation",
	"exhibition",
	"festival",
	"fair",
	"parade",
	"food_festival",
}

func IsCategoryTag(tag string) bool {
	for _, t := range CategoryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// swagger:model EventCategory
type EventCategory struct {
	UUIDBase
	EventID      string `gorm:"size:36;not null;uniqueIndex:uk_event_category_event_id" json:"event_id" validate:"required"`
	Party        bool   `json:"party"`
	Convention   bool   `json:"convention"`
	Trade        bool   `json:"trade"`
	Seminar      bool   `json:"seminar"`
	Meeting      bool   `json:"meeting"`
	Business     bool   `json:"business"`
	Wedding      bool   `json:"wedding"`
	Corporation  bool   `json:"corporation"`
	Exhibition   bool   `json:"exhibition"`
	Festival     bool   `json:"festival"`
	Fair         bool   `json:"fair"`
	Parade       bool   `json:"parade"`
	FoodFestival bool   `json:"food_festival"`
}

func (EventCategory) TableName() string {
	return "event_category"
}

func (c *EventCategory) flags() map[string]*bool {
	return map[string]*bool{
		"party":         &c.Party,
		"convention":    &c.Convention,
		"trade":         &c.Trade,
		"seminar":       &c.Seminar,
		"meeting":       &c.Meeting,
		"business":      &c.Business,
		"wedding":       &c.Wedding,
		"corporation":   &c.Corporation,
		"exhibition":    &c.Exhibition,
		"festival":      &c.Festival,
		"fair":          &c.Fair,
		"parade":        &c.Parade,
		"food_festival": &c.FoodFestival,
	}
}

// NewEventCategory builds the tag row for an event. Unknown tags are rejected.
func NewEventCategory(eventID string, tags []string) (*EventCategory, error) {
	c := &EventCategory{EventID: eventID}
	if err := c.SetTags(tags); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTags replaces every flag with the given tag set.
func (c *EventCategory) SetTags(tags []string) error {
	flags := c.flags()
	for _, tag := range tags {
		if _, ok := flags[tag]; !ok {
			return NewValidationError("tags", "unknown category "+tag)
		}
	}
	for _, f := range flags {
		*f = false
	}
	for _, tag := range tags {
		*flags[tag] = true
	}
	return nil
}

// Tags lists the set flags, sorted.
func (c *EventCategory) Tags() []string {
	var tags []string
	for name, f := range c.flags() {
		if *f {
			tags = append(tags, name)
		}
	}
	sort.Strings(tags)
	return tags
}

func (c *EventCategory) BeforeSave(tx *gorm.DB) error {
	c.ensureID()
	return validateStruct(c)
}
