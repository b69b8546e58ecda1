package wizard

import (
	"testing"

	"glimra/models"

	"github.com/stretchr/testify/assert"
)

func completeSession() *models.WizardSession {
	return &models.WizardSession{
		SessionID: "s",
		UserID:    "u",
		Selection: models.ServiceSelection{
			Vehicle:      &models.Vehicle{ID: "v"},
			ServiceType:  &models.ServiceType{ID: "st", BaseDurationMinutes: 60},
			ValetType:    &models.ValetType{ID: "vt"},
			AddressID:    "addr",
			Date:         "2026-09-02",
			SlotStart:    600,
			SlotSelected: true,
		},
	}
}

func TestIsStepValidRequiresEachField(t *testing.T) {
	tests := []struct {
		name  string
		unset func(*models.WizardSession)
		step  models.WizardStep
	}{
		{"vehicle unset", func(s *models.WizardSession) { s.Selection.Vehicle = nil }, models.StepVehicle},
		{"service unset", func(s *models.WizardSession) { s.Selection.ServiceType = nil }, models.StepService},
		{"valet unset", func(s *models.WizardSession) { s.Selection.ValetType = nil }, models.StepValet},
		{"address unset", func(s *models.WizardSession) { s.Selection.AddressID = "" }, models.StepDetails},
		{"slot not picked", func(s *models.WizardSession) { s.Selection.SlotSelected = false }, models.StepDetails},
		{"date unset", func(s *models.WizardSession) { s.Selection.Date = "" }, models.StepDetails},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := completeSession()
			assert.True(t, IsStepValid(sess, tc.step))
			tc.unset(sess)
			assert.False(t, IsStepValid(sess, tc.step))
			assert.False(t, CanProceedToSummary(sess))
		})
	}
}

func TestSummaryStepAlwaysValid(t *testing.T) {
	sess := &models.WizardSession{}
	assert.True(t, IsStepValid(sess, models.StepSummary))
	assert.False(t, CanProceedToSummary(sess))
}

func TestCanProceedToSummaryWithCompleteSelection(t *testing.T) {
	assert.True(t, CanProceedToSummary(completeSession()))
}

func TestDefaultedDateAloneDoesNotPassDetails(t *testing.T) {
	sess := completeSession()
	sess.Selection.SlotSelected = false
	// The date defaults to today in the UI; without an explicit slot pick
	// the details step stays incomplete.
	assert.False(t, IsStepValid(sess, models.StepDetails))
}
