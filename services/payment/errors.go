package payment

import "fmt"

type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrConfirmationInFlight is returned when Initiate is called for a logical
// purchase that already has an outstanding confirmation.
var ErrConfirmationInFlight = &PaymentError{
	Code:    "confirmationInFlight",
	Message: "a confirmation for this purchase is already in progress",
}

// ErrAttemptTerminal is returned when an operation targets an attempt that
// already reached a terminal status.
var ErrAttemptTerminal = &PaymentError{
	Code:    "attemptTerminal",
	Message: "payment attempt already reached a terminal status",
}

func NewProviderError(msg string) error {
	return &PaymentError{
		Code:    "providerError",
		Message: msg,
	}
}
