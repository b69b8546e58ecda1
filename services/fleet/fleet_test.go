package fleet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"glimra/models"
	"glimra/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFleetRepo struct {
	branches map[string]*models.Branch
	admins   map[string]*models.BranchAdmin
	subs     map[string]*models.FleetSubscription // keyed by userID
}

func newMemFleetRepo() *memFleetRepo {
	return &memFleetRepo{
		branches: map[string]*models.Branch{},
		admins:   map[string]*models.BranchAdmin{},
		subs:     map[string]*models.FleetSubscription{},
	}
}

func (r *memFleetRepo) ListBranches() ([]models.Branch, error) {
	var out []models.Branch
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *memFleetRepo) GetBranch(id string) (*models.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, fmt.Errorf("branch %s not found", id)
	}
	return b, nil
}

func (r *memFleetRepo) CreateBranch(b *models.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *memFleetRepo) UpdateBranch(id string, fields map[string]interface{}) error { return nil }

func (r *memFleetRepo) DeleteBranch(id string) error {
	b, ok := r.branches[id]
	if !ok {
		return fmt.Errorf("branch %s not found", id)
	}
	b.Active = false
	return nil
}

func (r *memFleetRepo) GetAdminByEmail(email string) (*models.BranchAdmin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, fmt.Errorf("admin not found")
}

func (r *memFleetRepo) CreateAdmin(a *models.BranchAdmin) error {
	r.admins[a.ID] = a
	return nil
}

func (r *memFleetRepo) ListBranchAdmins(branchID string) ([]models.BranchAdmin, error) {
	var out []models.BranchAdmin
	for _, a := range r.admins {
		if a.BranchID == branchID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memFleetRepo) DeleteAdmin(id string) error {
	delete(r.admins, id)
	return nil
}

func (r *memFleetRepo) GetUserSubscription(userID string) (*models.FleetSubscription, error) {
	s, ok := r.subs[userID]
	if !ok {
		return nil, fmt.Errorf("no subscription for %s", userID)
	}
	return s, nil
}

func (r *memFleetRepo) UpsertSubscription(sub *models.FleetSubscription) error {
	r.subs[sub.UserID] = sub
	return nil
}

type memPlans struct {
	plans map[string]models.SubscriptionPlan
}

func (p *memPlans) GetSubscriptionPlan(id string) (*models.SubscriptionPlan, error) {
	plan, ok := p.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s not found", id)
	}
	return &plan, nil
}

// fakePaymentService records Initiate requests and serves attempt state.
type fakePaymentService struct {
	attempts map[string]*models.PaymentAttempt
	requests []payment.InitiateRequest
}

func newFakePaymentService() *fakePaymentService {
	return &fakePaymentService{attempts: map[string]*models.PaymentAttempt{}}
}

func (f *fakePaymentService) Initiate(ctx context.Context, req payment.InitiateRequest) (*models.PaymentAttempt, error) {
	f.requests = append(f.requests, req)
	attempt := &models.PaymentAttempt{
		ID:          fmt.Sprintf("attempt-%d", len(f.requests)),
		UserID:      req.UserID,
		PurchaseKey: req.PurchaseKey,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Status:      models.PaymentStatusInitiated,
		CreatedAt:   time.Now(),
	}
	f.attempts[attempt.ID] = attempt
	return attempt, nil
}

func (f *fakePaymentService) ReportPresentation(ctx context.Context, attemptID string, outcome payment.PresentationOutcome, message string) (*models.PaymentAttempt, error) {
	return f.attempts[attemptID], nil
}

func (f *fakePaymentService) StartConfirmation(ctx context.Context, attemptID string) (*payment.ConfirmationHandle, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakePaymentService) Reconcile(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	return f.attempts[attemptID], nil
}

func (f *fakePaymentService) GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return nil, fmt.Errorf("attempt %s not found", attemptID)
	}
	return a, nil
}

func newTestFleetService() (*DefaultFleetService, *memFleetRepo, *fakePaymentService) {
	repo := newMemFleetRepo()
	pay := newFakePaymentService()
	svc := &DefaultFleetService{
		Repo:       repo,
		PaymentSvc: pay,
		Plans: &memPlans{plans: map[string]models.SubscriptionPlan{
			"basic": {ID: "basic", Name: "Basic Fleet", MonthlyPrice: 49, TrialDays: 14},
			"pro":   {ID: "pro", Name: "Pro Fleet", MonthlyPrice: 99},
		}},
	}
	return svc, repo, pay
}

func TestCreateBranchValidatesHours(t *testing.T) {
	svc, _, _ := newTestFleetService()

	_, err := svc.CreateBranch(models.Branch{
		Name:           "Broken",
		OperatingHours: models.OperatingHours{Open: 17 * 60, Close: 9 * 60},
	})
	assert.Error(t, err)

	branch, err := svc.CreateBranch(models.Branch{
		Name:           "Downtown",
		OperatingHours: models.OperatingHours{Open: 9 * 60, Close: 17 * 60},
	})
	require.NoError(t, err)
	assert.True(t, branch.Active)
	assert.NotEmpty(t, branch.ID)
}

func TestDeactivateBranchKeepsRecord(t *testing.T) {
	svc, repo, _ := newTestFleetService()
	branch, err := svc.CreateBranch(models.Branch{
		Name:           "Downtown",
		OperatingHours: models.OperatingHours{Open: 9 * 60, Close: 17 * 60},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateBranch(branch.ID))
	stored, err := repo.GetBranch(branch.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestAdminRegistrationAndLogin(t *testing.T) {
	svc, _, _ := newTestFleetService()
	branch, err := svc.CreateBranch(models.Branch{
		Name:           "Downtown",
		OperatingHours: models.OperatingHours{Open: 9 * 60, Close: 17 * 60},
	})
	require.NoError(t, err)

	_, err = svc.RegisterAdmin(branch.ID, "Alex", "alex@example.com", "short")
	assert.Error(t, err)

	admin, err := svc.RegisterAdmin(branch.ID, "Alex", "alex@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", admin.PasswordHash)

	token, got, err := svc.AuthenticateAdmin("alex@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, admin.ID, got.ID)

	_, _, err = svc.AuthenticateAdmin("alex@example.com", "wrong password")
	assert.Error(t, err)
	_, _, err = svc.AuthenticateAdmin("nobody@example.com", "correct horse battery")
	assert.Error(t, err)
}

func TestSubscribeTrialUsesSetupIntent(t *testing.T) {
	svc, _, pay := newTestFleetService()

	sub, attempt, err := svc.Subscribe("user-1", "basic", true)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusPending, sub.Status)
	assert.True(t, sub.Trial)
	assert.Equal(t, attempt.ID, sub.PaymentAttempt)

	require.Len(t, pay.requests, 1)
	assert.Equal(t, models.PaymentKindSetup, pay.requests[0].Kind)
	assert.Zero(t, pay.requests[0].Amount)
}

func TestSubscribePaidChargesMonthlyPrice(t *testing.T) {
	svc, _, pay := newTestFleetService()

	_, _, err := svc.Subscribe("user-1", "pro", false)
	require.NoError(t, err)

	require.Len(t, pay.requests, 1)
	assert.Equal(t, models.PaymentKindPayment, pay.requests[0].Kind)
	assert.Equal(t, 99.0, pay.requests[0].Amount)
}

func TestSubscribeTrialRequiresPlanWithTrial(t *testing.T) {
	svc, _, _ := newTestFleetService()

	_, _, err := svc.Subscribe("user-1", "pro", true)
	assert.Error(t, err)
}

func TestActivateSubscriptionWaitsForConfirmedAttempt(t *testing.T) {
	svc, _, pay := newTestFleetService()

	sub, attempt, err := svc.Subscribe("user-1", "pro", false)
	require.NoError(t, err)

	// Still initiated: activation is a no-op.
	got, err := svc.ActivateSubscription("user-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusPending, got.Status)

	// Reconciliation (or the polling loop) later confirms the attempt.
	pay.attempts[attempt.ID].Status = models.PaymentStatusConfirmed
	got, err = svc.ActivateSubscription("user-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, got.Status)
	assert.False(t, got.ActivatedAt.IsZero())
	assert.Equal(t, sub.PlanID, got.PlanID)

	// Idempotent once active.
	got, err = svc.ActivateSubscription("user-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, got.Status)
}

func TestCancelSubscription(t *testing.T) {
	svc, repo, _ := newTestFleetService()

	_, _, err := svc.Subscribe("user-1", "pro", false)
	require.NoError(t, err)

	require.NoError(t, svc.CancelSubscription("user-1"))
	stored, err := repo.GetUserSubscription("user-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCanceled, stored.Status)
}

func TestSubscribeRejectsSecondActiveSubscription(t *testing.T) {
	svc, repo, _ := newTestFleetService()

	_, _, err := svc.Subscribe("user-1", "pro", false)
	require.NoError(t, err)
	repo.subs["user-1"].Status = models.SubscriptionStatusActive

	_, _, err = svc.Subscribe("user-1", "basic", false)
	assert.Error(t, err)
}
