package model

import (
	"time"

	"github.com/google/uuid"
)

// UUIDBase is embedded by every entity. IDs are generated when the caller
// leaves them empty.
// swagger:model
type UUIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *UUIDBase) ensureID() {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
}

func GenerateUUID() string {
	return uuid.New().String()
}
