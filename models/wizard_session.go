package models

// Wizard steps, in order.
type WizardStep int

const (
	StepVehicle WizardStep = iota + 1
	StepService
	StepValet
	StepDetails
	StepSummary
)

func (s WizardStep) String() string {
	switch s {
	case StepVehicle:
		return "vehicle"
	case StepService:
		return "service"
	case StepValet:
		return "valet"
	case StepDetails:
		return "details"
	case StepSummary:
		return "summary"
	}
	return "unknown"
}

// WizardSession holds one user's in-progress booking between steps.
// Stored as JSON in Redis with a TTL; single-owner, never mutated concurrently.
type WizardSession struct {
	SessionID string           `json:"sessionId"`
	UserID    string           `json:"userId"`
	Step      WizardStep       `json:"step"`
	Selection ServiceSelection `json:"selection"`
	// Slots is the last availability computation, AvailabilityRev its
	// day|duration tag. Results computed for a stale rev are discarded.
	Slots           []TimeSlot `json:"slots,omitempty"`
	AvailabilityRev string     `json:"availabilityRev,omitempty"`
	AddonModalOpen  bool       `json:"addonModalOpen,omitempty"`
}
