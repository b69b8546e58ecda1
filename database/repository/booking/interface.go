package bookingRepo

import (
	"context"

	"glimra/models"
)

// BookingRepository persists booking records and serves the read-only
// interval queries the availability resolver collides against.
type BookingRepository interface {
	CreateBooking(booking *models.Booking) error
	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetIntervalsForDay(branchID, date string) ([]models.BookingInterval, error)
	ListUserBookings(userID string) ([]models.Booking, error)
	UpdateBookingStatus(bookingID, status string) error
	CancelBooking(bookingID string) error
}
