package models

import "time"

// PaymentAttempt statuses.
const (
	PaymentStatusInitiated  = "initiated"
	PaymentStatusPresented  = "presented"
	PaymentStatusConfirming = "confirming"
	PaymentStatusConfirmed  = "confirmed"
	PaymentStatusFailed     = "failed"
	PaymentStatusCanceled   = "canceled"
	PaymentStatusTimedOut   = "timed_out"
)

// PaymentAttempt kinds. Setup attempts register a payment method without
// moving money and are never polled.
const (
	PaymentKindPayment = "payment"
	PaymentKindSetup   = "setup"
)

// PaymentAttempt is the transient state for one purchase or subscription action.
// TransactionID is the source of truth for confirmation polling.
type PaymentAttempt struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"userId" json:"userId"`
	PurchaseKey    string    `bson:"purchaseKey" json:"purchaseKey"` // logical purchase, e.g. "subscription:<planID>"
	Kind           string    `bson:"kind" json:"kind"`
	ClientSecret   string    `bson:"clientSecret" json:"clientSecret"`
	TransactionID  string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Amount         float64   `bson:"amount" json:"amount"`
	Currency       string    `bson:"currency" json:"currency"`
	Status         string    `bson:"status" json:"status"`
	FailureMessage string    `bson:"failureMessage,omitempty" json:"failureMessage,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the attempt reached a terminal status.
func (p PaymentAttempt) IsTerminal() bool {
	switch p.Status {
	case PaymentStatusConfirmed, PaymentStatusFailed, PaymentStatusCanceled, PaymentStatusTimedOut:
		return true
	}
	return false
}
