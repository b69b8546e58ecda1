package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/setupintent"
)

// IntentStatus is the provider-side status of a transaction, reduced to what
// the confirmation loop cares about.
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusSucceeded IntentStatus = "succeeded"
	IntentStatusFailed    IntentStatus = "failed"
)

// Intent is the provider handle handed back from intent creation.
type Intent struct {
	TransactionID string
	ClientSecret  string
}

// IntentClient creates intents and answers status checks. The Stripe
// implementation is the production one; tests substitute fakes.
type IntentClient interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency, purchaseKey string) (*Intent, error)
	CreateSetupIntent(ctx context.Context, purchaseKey string) (*Intent, error)
	CheckStatus(ctx context.Context, transactionID string) (IntentStatus, error)
}

// StripeIntentClient implements IntentClient over stripe-go.
type StripeIntentClient struct{}

// toMinorUnits converts decimal currency units to the integer minor units
// Stripe expects.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *StripeIntentClient) CreatePaymentIntent(ctx context.Context, amount float64, currency, purchaseKey string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("purchaseKey", purchaseKey)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent creation failed: %w", err)
	}
	return &Intent{TransactionID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (c *StripeIntentClient) CreateSetupIntent(ctx context.Context, purchaseKey string) (*Intent, error) {
	params := &stripe.SetupIntentParams{}
	params.Context = ctx
	params.AddMetadata("purchaseKey", purchaseKey)

	si, err := setupintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe setup intent creation failed: %w", err)
	}
	return &Intent{TransactionID: si.ID, ClientSecret: si.ClientSecret}, nil
}

// CheckStatus maps the provider's intent state onto the confirmation loop's
// three-way answer. States that can still progress keep the loop polling.
func (c *StripeIntentClient) CheckStatus(ctx context.Context, transactionID string) (IntentStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(transactionID, params)
	if err != nil {
		return IntentStatusPending, fmt.Errorf("stripe status check failed: %w", err)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return IntentStatusSucceeded, nil
	case stripe.PaymentIntentStatusCanceled:
		return IntentStatusFailed, nil
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		// After presentation reported success, falling back to
		// requires_payment_method means the charge was declined.
		return IntentStatusFailed, nil
	default:
		return IntentStatusPending, nil
	}
}
