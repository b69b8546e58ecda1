package models

import "time"

// Vehicle is a user's registered vehicle.
type Vehicle struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	PlateNumber string    `bson:"plateNumber" json:"plateNumber"`
	Make        string    `bson:"make" json:"make"`
	Model       string    `bson:"model" json:"model"`
	IsSUV       bool      `bson:"isSuv" json:"isSuv"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
