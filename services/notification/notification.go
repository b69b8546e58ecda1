package notification

import (
	"context"
	"fmt"

	"glimra/database/repository/profile"
	"glimra/models"
	"glimra/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends best-effort push notifications. Failures are the
// caller's to log, never to fail a booking or payment over.
type NotificationService interface {
	SendBookingConfirmed(ctx context.Context, userID string, booking models.Booking) error
	SendPaymentConfirmed(ctx context.Context, userID string, attempt models.PaymentAttempt) error
}

// FCMNotificationService implements NotificationService over Firebase Cloud
// Messaging.
type FCMNotificationService struct {
	Client   *messaging.Client
	Profiles profileRepo.ProfileRepository
}

func (n *FCMNotificationService) SendBookingConfirmed(ctx context.Context, userID string, booking models.Booking) error {
	title := "Booking confirmed"
	body := fmt.Sprintf("%s on %s at %s", booking.ServiceTypeName, booking.Date, models.MinutesToClock(booking.Start))
	data := map[string]string{
		"type":      "booking_confirmed",
		"bookingId": booking.ID,
		"date":      booking.Date,
	}
	return n.push(ctx, userID, title, body, data)
}

func (n *FCMNotificationService) SendPaymentConfirmed(ctx context.Context, userID string, attempt models.PaymentAttempt) error {
	title := "Payment confirmed"
	body := fmt.Sprintf("Your payment of %.2f %s was confirmed.", attempt.Amount, attempt.Currency)
	data := map[string]string{
		"type":      "payment_confirmed",
		"attemptId": attempt.ID,
	}
	return n.push(ctx, userID, title, body, data)
}

func (n *FCMNotificationService) push(ctx context.Context, userID, title, body string, data map[string]string) error {
	tokens, err := n.Profiles.GetDeviceTokens(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	logger := utils.GetLogger()
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := n.Client.Send(ctx, msg); err != nil {
			logger.Warn("push send failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}
