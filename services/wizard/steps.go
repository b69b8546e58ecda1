package wizard

import (
	"context"

	"glimra/models"
)

// IsStepValid reports whether the given step's required input is present.
func IsStepValid(sess *models.WizardSession, step models.WizardStep) bool {
	sel := sess.Selection
	switch step {
	case models.StepVehicle:
		return sel.Vehicle != nil
	case models.StepService:
		return sel.ServiceType != nil
	case models.StepValet:
		return sel.ValetType != nil
	case models.StepDetails:
		// A defaulted date is not enough: the user must have interacted
		// with a slot.
		return sel.AddressID != "" && sel.HasSelectedTimeSlot()
	case models.StepSummary:
		return true
	}
	return false
}

// CanProceedToNextStep gates forward navigation on the current step.
func CanProceedToNextStep(sess *models.WizardSession) bool {
	return IsStepValid(sess, sess.Step)
}

// CanProceedToSummary requires every gated step to be valid.
func CanProceedToSummary(sess *models.WizardSession) bool {
	for step := models.StepVehicle; step <= models.StepDetails; step++ {
		if !IsStepValid(sess, step) {
			return false
		}
	}
	return true
}

// Next advances the wizard one step. Invalid forward navigation is a no-op,
// never an error: the session is returned unchanged.
func (s *DefaultWizardService) Next(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step >= models.StepSummary || !CanProceedToNextStep(sess) {
		return sess, nil
	}
	target := sess.Step + 1
	if target == models.StepSummary && !CanProceedToSummary(sess) {
		return sess, nil
	}
	sess.Step = target
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Back moves one step backwards. Backward navigation is never gated.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step > models.StepVehicle {
		sess.Step--
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// GoToStep jumps directly to a step. The jump is permitted only when every
// step before the target is valid; otherwise it is a no-op.
func (s *DefaultWizardService) GoToStep(ctx context.Context, sessionID string, step models.WizardStep) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if step < models.StepVehicle || step > models.StepSummary {
		return sess, nil
	}
	for prior := models.StepVehicle; prior < step; prior++ {
		if !IsStepValid(sess, prior) {
			return sess, nil
		}
	}
	sess.Step = step
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
