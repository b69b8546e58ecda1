package wizard

import "fmt"

type WizardError struct {
	Code    string
	Message string
}

func (e *WizardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSessionError(msg string) error {
	return &WizardError{
		Code:    "sessionError",
		Message: msg,
	}
}

// ErrSubmissionInFlight is returned when Submit is called while a prior
// submission for the same session is still pending.
var ErrSubmissionInFlight = &WizardError{
	Code:    "submissionInFlight",
	Message: "a submission for this session is already in progress",
}

// ErrStaleAvailability is returned when a slot computation finishes after the
// session's day or duration has moved on; the result is discarded.
var ErrStaleAvailability = &WizardError{
	Code:    "staleAvailability",
	Message: "availability result is stale; day or duration changed",
}

// ErrIncompleteSelection is returned when Submit is called before all wizard
// steps are valid.
var ErrIncompleteSelection = &WizardError{
	Code:    "incompleteSelection",
	Message: "cannot submit: required selections are missing",
}
