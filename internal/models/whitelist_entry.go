package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WhitelistEntry represents an Aadhaar number pre-approved for voting.
// IsUsed is flipped by the voting application once the number is consumed.
type WhitelistEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AadhaarNumber string             `bson:"aadhaarNumber" json:"aadhaarNumber" validate:"required,aadhaar"`
	IsUsed        bool               `bson:"isUsed" json:"isUsed"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewWhitelistEntry returns an unused entry stamped with now.
func NewWhitelistEntry(aadhaarNumber string, now time.Time) *WhitelistEntry {
	return &WhitelistEntry{
		AadhaarNumber: aadhaarNumber,
		IsUsed:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
