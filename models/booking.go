package models

import "time"

// Booking statuses. Active statuses block availability; cancelled and
// completed bookings do not.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusScheduled  = "scheduled"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// ActiveBookingStatuses is the set of statuses that occupy a slot.
var ActiveBookingStatuses = map[string]bool{
	BookingStatusPending:    true,
	BookingStatusConfirmed:  true,
	BookingStatusScheduled:  true,
	BookingStatusInProgress: true,
}

// Booking is a confirmed booking record.
type Booking struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"userId" json:"userId"`
	BranchID         string    `bson:"branchId" json:"branchId"`
	VehicleID        string    `bson:"vehicleId" json:"vehicleId"`
	ServiceTypeID    string    `bson:"serviceTypeId" json:"serviceTypeId"`
	ServiceTypeName  string    `bson:"serviceTypeName" json:"serviceTypeName"`
	ValetTypeID      string    `bson:"valetTypeId" json:"valetTypeId"`
	AddressID        string    `bson:"addressId" json:"addressId"`
	AddOnIDs         []string  `bson:"addOnIds,omitempty" json:"addOnIds,omitempty"`
	Date             string    `bson:"date" json:"date"` // "2006-01-02"
	Start            int       `bson:"start" json:"start"`
	End              int       `bson:"end" json:"end"`
	DurationMinutes  int       `bson:"durationMinutes" json:"durationMinutes"`
	Instructions     string    `bson:"instructions,omitempty" json:"instructions,omitempty"`
	IsExpressService bool      `bson:"isExpressService" json:"isExpressService"`
	TotalPrice       float64   `bson:"totalPrice" json:"totalPrice"`
	Status           string    `bson:"status" json:"status"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingReference is the confirmation payload returned to the client.
type BookingReference struct {
	BookingID  string  `json:"bookingId"`
	BranchID   string  `json:"branchId"`
	Date       string  `json:"date"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}
