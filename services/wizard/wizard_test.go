package wizard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"glimra/models"
	"glimra/services/pricing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	services map[string]models.ServiceType
	valets   map[string]models.ValetType
	addons   map[string]models.AddOn
}

func (f *fakeCatalog) ListServiceTypes() ([]models.ServiceType, error) { return nil, nil }
func (f *fakeCatalog) GetServiceType(id string) (*models.ServiceType, error) {
	st, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("service type %s not found", id)
	}
	return &st, nil
}
func (f *fakeCatalog) ListValetTypes() ([]models.ValetType, error) { return nil, nil }
func (f *fakeCatalog) GetValetType(id string) (*models.ValetType, error) {
	vt, ok := f.valets[id]
	if !ok {
		return nil, fmt.Errorf("valet type %s not found", id)
	}
	return &vt, nil
}
func (f *fakeCatalog) ListAddOns() ([]models.AddOn, error) { return nil, nil }
func (f *fakeCatalog) GetAddOns(ids []string) ([]models.AddOn, error) {
	var out []models.AddOn
	for _, id := range ids {
		if a, ok := f.addons[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeCatalog) ListSubscriptionPlans() ([]models.SubscriptionPlan, error) { return nil, nil }
func (f *fakeCatalog) GetSubscriptionPlan(id string) (*models.SubscriptionPlan, error) {
	return nil, fmt.Errorf("plan %s not found", id)
}

type fakeVehicles struct {
	vehicles map[string]models.Vehicle
}

func (f *fakeVehicles) ListUserVehicles(userID string) ([]models.Vehicle, error) { return nil, nil }
func (f *fakeVehicles) GetVehicle(id string) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}
	return &v, nil
}
func (f *fakeVehicles) CreateVehicle(v *models.Vehicle) error    { return nil }
func (f *fakeVehicles) DeleteVehicle(id, userID string) error    { return nil }

type fakeBookings struct {
	intervals map[string][]models.BookingInterval // keyed by date
	created   []models.Booking
	createErr error
}

func (f *fakeBookings) CreateBooking(b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *b)
	return nil
}
func (f *fakeBookings) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, fmt.Errorf("booking %s not found", id)
}
func (f *fakeBookings) GetIntervalsForDay(branchID, date string) ([]models.BookingInterval, error) {
	return f.intervals[date], nil
}
func (f *fakeBookings) ListUserBookings(userID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookings) UpdateBookingStatus(id, status string) error              { return nil }
func (f *fakeBookings) CancelBooking(id string) error                            { return nil }

type fakeFleet struct {
	branch models.Branch
}

func (f *fakeFleet) ListBranches() ([]models.Branch, error) { return []models.Branch{f.branch}, nil }
func (f *fakeFleet) GetBranch(id string) (*models.Branch, error) {
	if id != f.branch.ID {
		return nil, fmt.Errorf("branch %s not found", id)
	}
	b := f.branch
	return &b, nil
}
func (f *fakeFleet) CreateBranch(b *models.Branch) error                       { return nil }
func (f *fakeFleet) UpdateBranch(id string, fields map[string]interface{}) error { return nil }
func (f *fakeFleet) DeleteBranch(id string) error                              { return nil }
func (f *fakeFleet) GetAdminByEmail(email string) (*models.BranchAdmin, error) {
	return nil, fmt.Errorf("admin not found")
}
func (f *fakeFleet) CreateAdmin(a *models.BranchAdmin) error { return nil }
func (f *fakeFleet) ListBranchAdmins(branchID string) ([]models.BranchAdmin, error) {
	return nil, nil
}
func (f *fakeFleet) DeleteAdmin(id string) error { return nil }
func (f *fakeFleet) GetUserSubscription(userID string) (*models.FleetSubscription, error) {
	return nil, fmt.Errorf("no subscription")
}
func (f *fakeFleet) UpsertSubscription(sub *models.FleetSubscription) error { return nil }

type fakeProfiles struct {
	loyalty models.LoyaltyInfo
}

func (f *fakeProfiles) GetProfile(userID string) (*models.Profile, error) { return nil, nil }
func (f *fakeProfiles) GetLoyalty(userID string) (models.LoyaltyInfo, error) {
	return f.loyalty, nil
}
func (f *fakeProfiles) GetDeviceTokens(userID string) ([]string, error) { return nil, nil }

// newTestService wires the wizard against miniredis and in-memory fakes.
// Branch hours are 9:00 to 17:00 at 30 minute granularity.
func newTestService(t *testing.T) (*DefaultWizardService, *fakeBookings) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	bookings := &fakeBookings{intervals: map[string][]models.BookingInterval{}}
	svc := &DefaultWizardService{
		Catalog: &fakeCatalog{
			services: map[string]models.ServiceType{
				"full": {ID: "full", Name: "Full Valet", BasePrice: 40, BaseDurationMinutes: 60},
			},
			valets: map[string]models.ValetType{
				"standard": {ID: "standard", Name: "Standard"},
			},
			addons: map[string]models.AddOn{
				"wax":    {ID: "wax", Name: "Wax", Price: 15, ExtraDurationMinutes: 30},
				"engine": {ID: "engine", Name: "Engine Bay", Price: 25, ExtraDurationMinutes: 420},
			},
		},
		Vehicles: &fakeVehicles{vehicles: map[string]models.Vehicle{
			"car-1": {ID: "car-1", UserID: "user-1", PlateNumber: "ABC123"},
			"suv-1": {ID: "suv-1", UserID: "user-1", PlateNumber: "SUV999", IsSUV: true},
		}},
		Bookings: bookings,
		Fleet: &fakeFleet{branch: models.Branch{
			ID:             "branch-1",
			Name:           "Downtown",
			OperatingHours: models.OperatingHours{Open: 9 * 60, Close: 17 * 60},
			Active:         true,
		}},
		Profiles:           &fakeProfiles{},
		Calc:               pricing.Calculator{SUVSurchargeRate: 0.10, ExpressServiceFee: 30},
		Sessions:           NewSessionStore(client, 30*time.Minute),
		Flags:              &RedisFlagStore{Client: client},
		DefaultGranularity: 30,
		Now: func() time.Time {
			return time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
		},
	}
	return svc, bookings
}

// fillSession walks a session through every step up to a selected slot on
// tomorrow's date.
func fillSession(t *testing.T, svc *DefaultWizardService) string {
	t.Helper()
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	id := sess.SessionID

	_, err = svc.SelectVehicle(ctx, id, "car-1")
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, "full")
	require.NoError(t, err)
	_, err = svc.SelectValet(ctx, id, "standard")
	require.NoError(t, err)
	_, err = svc.SelectAddress(ctx, id, "addr-1", "branch-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, id, "2026-09-02")
	require.NoError(t, err)
	_, err = svc.Slots(ctx, id, "2026-09-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, id, 10*60)
	require.NoError(t, err)
	return id
}

func TestStartSessionBeginsAtVehicleStep(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicle, sess.Step)
	assert.NotEmpty(t, sess.SessionID)

	got, err := svc.GetSession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, got.SessionID)
}

func TestGetSessionMissing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetSession(context.Background(), "nope")
	assert.Error(t, err)
}

func TestSelectVehicleRejectsForeignVehicle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-2")
	require.NoError(t, err)

	_, err = svc.SelectVehicle(ctx, sess.SessionID, "car-1")
	assert.Error(t, err)
}

func TestSelectVehicleSetsSUVFlag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)

	got, err := svc.SelectVehicle(ctx, sess.SessionID, "suv-1")
	require.NoError(t, err)
	assert.True(t, got.Selection.IsSUV)
}

func TestNextIsNoOpWhenStepInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)

	// No vehicle selected yet.
	got, err := svc.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicle, got.Step)

	_, err = svc.SelectVehicle(ctx, sess.SessionID, "car-1")
	require.NoError(t, err)
	got, err = svc.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepService, got.Step)
}

func TestBackIsNeverGated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	_, err = svc.SelectVehicle(ctx, sess.SessionID, "car-1")
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess.SessionID)
	require.NoError(t, err)

	got, err := svc.Back(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicle, got.Step)

	// Back at the first step stays put.
	got, err = svc.Back(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicle, got.Step)
}

func TestGoToStepRequiresAllPriorSteps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	_, err = svc.SelectVehicle(ctx, sess.SessionID, "car-1")
	require.NoError(t, err)

	// Valet step is not valid yet, so jumping to details is a no-op.
	got, err := svc.GoToStep(ctx, sess.SessionID, models.StepDetails)
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicle, got.Step)

	got, err = svc.GoToStep(ctx, sess.SessionID, models.StepService)
	require.NoError(t, err)
	assert.Equal(t, models.StepService, got.Step)
}

func TestGoToSummaryRequiresCompleteSelection(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	got, err := svc.GoToStep(ctx, id, models.StepSummary)
	require.NoError(t, err)
	assert.Equal(t, models.StepSummary, got.Step)
}

func TestSlotsComputesAndPersists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	id := sess.SessionID
	_, err = svc.SelectVehicle(ctx, id, "car-1")
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, "full")
	require.NoError(t, err)
	_, err = svc.SelectAddress(ctx, id, "addr-1", "branch-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, id, "2026-09-02")
	require.NoError(t, err)

	slots, err := svc.Slots(ctx, id, "2026-09-02")
	require.NoError(t, err)
	// 9:00 to 16:00 inclusive at 30 minute steps for a 60 minute service.
	assert.Len(t, slots, 15)

	got, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02|60", got.AvailabilityRev)
	assert.Len(t, got.Slots, 15)
}

func TestSlotsForOtherDateIsDiscarded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	id := sess.SessionID
	_, err = svc.SelectVehicle(ctx, id, "car-1")
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, "full")
	require.NoError(t, err)
	_, err = svc.SelectAddress(ctx, id, "addr-1", "branch-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, id, "2026-09-02")
	require.NoError(t, err)

	// Asking for a day the session is no longer on resolves stale.
	_, err = svc.Slots(ctx, id, "2026-09-03")
	assert.ErrorIs(t, err, ErrStaleAvailability)

	got, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.AvailabilityRev)
	assert.Nil(t, got.Slots)
}

func TestSelectSlotRejectsStaleAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	// Changing the date invalidates the computed slots.
	_, err := svc.SelectDate(ctx, id, "2026-09-03")
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, id, 10*60)
	assert.ErrorIs(t, err, ErrStaleAvailability)
}

func TestSelectSlotRejectsUnavailableStart(t *testing.T) {
	svc, bookings := newTestService(t)
	bookings.intervals["2026-09-02"] = []models.BookingInterval{
		{Start: 10 * 60, End: 11 * 60, Status: models.BookingStatusConfirmed},
	}
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	id := sess.SessionID
	_, err = svc.SelectVehicle(ctx, id, "car-1")
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, id, "full")
	require.NoError(t, err)
	_, err = svc.SelectAddress(ctx, id, "addr-1", "branch-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, id, "2026-09-02")
	require.NoError(t, err)
	_, err = svc.Slots(ctx, id, "2026-09-02")
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, id, 10*60)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStaleAvailability)
}

func TestConfirmAddOnsKeepsFittingSlot(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	// 60 + 30 minutes starting at 10:00 still ends before close.
	got, err := svc.ConfirmAddOns(ctx, id, []string{"wax"})
	require.NoError(t, err)
	assert.True(t, got.Selection.SlotSelected)
	assert.Equal(t, 10*60, got.Selection.SlotStart)
	// Slots were computed for the old duration and must go.
	assert.Nil(t, got.Slots)
	assert.Empty(t, got.AvailabilityRev)
	assert.False(t, got.AddonModalOpen)
}

func TestConfirmAddOnsClearsSlotThatNoLongerFits(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	// 60 + 420 minutes starting at 10:00 runs past closing time.
	got, err := svc.ConfirmAddOns(ctx, id, []string{"engine"})
	require.NoError(t, err)
	assert.False(t, got.Selection.SlotSelected)
	assert.Zero(t, got.Selection.SlotStart)
	assert.Len(t, got.Selection.AddOns, 1)
}

func TestConfirmAddOnsRejectsUnknownAddon(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)

	_, err := svc.ConfirmAddOns(context.Background(), id, []string{"wax", "ghost"})
	assert.Error(t, err)
}

func TestQuoteReflectsSelection(t *testing.T) {
	svc, _ := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	bd, err := svc.Quote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 40.0, bd.BasePrice)
	assert.Equal(t, 40.0, bd.FinalPrice)

	_, err = svc.SetExpressService(ctx, id, true)
	require.NoError(t, err)
	bd, err = svc.Quote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 70.0, bd.FinalPrice)
}

func TestSubmitRequiresCompleteSelection(t *testing.T) {
	svc, bookings := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
	assert.Empty(t, bookings.created)
}

func TestSubmitCreatesBookingAndClearsSession(t *testing.T) {
	svc, bookings := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	ref, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	require.Len(t, bookings.created, 1)

	booking := bookings.created[0]
	assert.Equal(t, ref.BookingID, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "2026-09-02", booking.Date)
	assert.Equal(t, 10*60, booking.Start)
	assert.Equal(t, 11*60, booking.End)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	_, err = svc.GetSession(ctx, id)
	assert.Error(t, err)
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	svc, bookings := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	// Simulate a concurrent submission holding the flag.
	acquired, err := svc.Flags.Acquire(ctx, "submit:"+id, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = svc.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Empty(t, bookings.created)
}

func TestSubmitFailurePreservesSession(t *testing.T) {
	svc, bookings := newTestService(t)
	id := fillSession(t, svc)
	ctx := context.Background()

	bookings.createErr = fmt.Errorf("mongo down")
	_, err := svc.Submit(ctx, id)
	assert.Error(t, err)

	// The session survives so the user can retry.
	got, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Selection.SlotSelected)

	// And the flag was released, so the retry is not blocked.
	bookings.createErr = nil
	_, err = svc.Submit(ctx, id)
	assert.NoError(t, err)
	assert.Len(t, bookings.created, 1)
}
