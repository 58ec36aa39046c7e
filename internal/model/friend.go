package model

import (
	"strings"

	"gorm.io/gorm"
)

// Friend request lifecycle: pending -> accepted | rejected.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
	FriendRejected = "rejected"
)

// Friend is a directed request from UserID to FriendID. FriendName is the
// addressee's display name when the request was made.
// swagger:model Friend
type Friend struct {
	UUIDBase
	UserID     string `gorm:"size:36;not null;index" json:"user_id" validate:"required"`
	FriendID   string `gorm:"size:36;not null;index" json:"friend_id" validate:"required"`
	FriendName string `gorm:"size:255;not null" json:"friend_name" validate:"required"`
	Status     string `gorm:"size:16;not null;default:'pending'" json:"status" validate:"required,oneof=pending accepted rejected"`
	// PairKey is the same for both directions of a pair, so at most one
	// request can exist between two users.
	PairKey string `gorm:"size:73;not null;uniqueIndex:uk_friend_pair" json:"-"`
}

// FriendPairKey orders the two ids so (a, b) and (b, a) share a key.
func FriendPairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return strings.Join([]string{a, b}, ":")
}

func (Friend) TableName() string {
	return "friend"
}

func (f *Friend) Validate() error {
	if err := validateStruct(f); err != nil {
		return err
	}
	if f.UserID == f.FriendID {
		return NewValidationError("friend_id", "cannot befriend yourself")
	}
	return nil
}

func (f *Friend) BeforeSave(tx *gorm.DB) error {
	f.ensureID()
	if f.Status == "" {
		f.Status = FriendPending
	}
	f.PairKey = FriendPairKey(f.UserID, f.FriendID)
	return f.Validate()
}
