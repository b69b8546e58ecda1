package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo is the MongoDB implementation of BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

// CreateBooking inserts a new booking document.
func (repo *MongoBookingRepo) CreateBooking(booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		return nil, fmt.Errorf("booking not found: %w", err)
	}
	return &booking, nil
}

// GetIntervalsForDay returns the [start, end) intervals of all bookings for a
// branch on a given date, with their statuses. The availability resolver
// filters for active statuses itself.
func (repo *MongoBookingRepo) GetIntervalsForDay(branchID, date string) ([]models.BookingInterval, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	proj := options.Find().SetProjection(bson.M{"start": 1, "end": 1, "status": 1})
	cur, err := repo.coll.Find(ctx, bson.M{"branchId": branchID, "date": date}, proj)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for %s on %s: %w", branchID, date, err)
	}
	defer cur.Close(ctx)

	var intervals []models.BookingInterval
	if err := cur.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding booking intervals: %w", err)
	}
	return intervals, nil
}

// ListUserBookings returns a user's bookings, newest first.
func (repo *MongoBookingRepo) ListUserBookings(userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cur, err := repo.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying user bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus sets the status field of a booking.
func (repo *MongoBookingRepo) UpdateBookingStatus(bookingID, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return nil
}

// CancelBooking marks a booking cancelled. The record is kept; cancelled
// bookings no longer block availability.
func (repo *MongoBookingRepo) CancelBooking(bookingID string) error {
	return repo.UpdateBookingStatus(bookingID, models.BookingStatusCancelled)
}
