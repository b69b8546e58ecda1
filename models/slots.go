package models

import "fmt"

// TimeSlot is a candidate appointment window on a specific day.
// Start and End are minutes from midnight (e.g. 540 for 9:00 AM); the
// formatted times are what clients render.
type TimeSlot struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`
	Date      string `json:"date"` // "2006-01-02"
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// BookingInterval is an existing reservation's [start, end) window,
// fetched read-only for collision checking.
type BookingInterval struct {
	Start  int    `bson:"start" json:"start"`
	End    int    `bson:"end" json:"end"`
	Status string `bson:"status" json:"status"`
}

// OperatingHours is a branch's daily open/close window in minutes from midnight.
type OperatingHours struct {
	Open  int `bson:"open" json:"open"`
	Close int `bson:"close" json:"close"`
}

// MinutesToClock formats minutes-from-midnight as "15:04" wall-clock time.
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
