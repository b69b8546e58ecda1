package models

import "time"

// Branch is a fleet location where detailers operate. Operating hours and
// slot granularity feed the availability resolver.
type Branch struct {
	ID                     string         `bson:"id" json:"id"`
	Name                   string         `bson:"name" json:"name"`
	Address                string         `bson:"address,omitempty" json:"address,omitempty"`
	OperatingHours         OperatingHours `bson:"operatingHours" json:"operatingHours"`
	SlotGranularityMinutes int            `bson:"slotGranularityMinutes,omitempty" json:"slotGranularityMinutes,omitempty"`
	Active                 bool           `bson:"active" json:"active"`
	CreatedAt              time.Time      `bson:"createdAt" json:"createdAt"`
}

// BranchAdmin manages a branch. PasswordHash is bcrypt.
type BranchAdmin struct {
	ID           string    `bson:"id" json:"id"`
	BranchID     string    `bson:"branchId" json:"branchId"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// SubscriptionPlan is a fleet subscription offering.
type SubscriptionPlan struct {
	ID           string  `bson:"id" json:"id"`
	Name         string  `bson:"name" json:"name"`
	MonthlyPrice float64 `bson:"monthlyPrice" json:"monthlyPrice"`
	TrialDays    int     `bson:"trialDays,omitempty" json:"trialDays,omitempty"`
	Description  string  `bson:"description,omitempty" json:"description,omitempty"`
}

const (
	SubscriptionStatusPending  = "pending"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// FleetSubscription is a user's active or pending subscription.
type FleetSubscription struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	PlanID          string    `bson:"planId" json:"planId"`
	Status          string    `bson:"status" json:"status"` // "pending", "active", "canceled"
	Trial           bool      `bson:"trial" json:"trial"`
	PaymentAttempt  string    `bson:"paymentAttemptId,omitempty" json:"paymentAttemptId,omitempty"`
	ActivatedAt     time.Time `bson:"activatedAt,omitempty" json:"activatedAt,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
