package models

import "time"

// Profile is the user context the booking engine reads: loyalty tier for
// pricing and device tokens for push notifications.
type Profile struct {
	UserID       string      `bson:"userId" json:"userId"`
	Name         string      `bson:"name,omitempty" json:"name,omitempty"`
	Loyalty      LoyaltyInfo `bson:"loyalty" json:"loyalty"`
	DeviceTokens []string    `bson:"deviceTokens,omitempty" json:"deviceTokens,omitempty"`
	UpdatedAt    time.Time   `bson:"updatedAt" json:"updatedAt"`
}
