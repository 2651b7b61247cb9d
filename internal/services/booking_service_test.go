package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrybackend/internal/booking"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
	"ferrybackend/internal/pricing"
)

type fakeSailingSource struct {
	sailings map[int64]models.Sailing
}

func (s fakeSailingSource) GetByID(_ context.Context, id int64) (models.Sailing, error) {
	sl, ok := s.sailings[id]
	if !ok {
		return sl, domain.NotFoundError{Resource: "sailing"}
	}
	return sl, nil
}

func (s fakeSailingSource) Search(_ context.Context, from, to, _ string) ([]models.Sailing, error) {
	var out []models.Sailing
	for _, sl := range s.sailings {
		if sl.DeparturePort == from && sl.ArrivalPort == to {
			out = append(out, sl)
		}
	}
	return out, nil
}

type fakeBookingStore struct {
	nextID   int64
	bookings map[int64]models.Booking
	requests map[int64]booking.Request
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		nextID:   1,
		bookings: map[int64]models.Booking{},
		requests: map[int64]booking.Request{},
	}
}

func (s *fakeBookingStore) Create(_ context.Context, reference string, req booking.Request, now time.Time) (models.Booking, error) {
	counts := models.PassengerCounts{}
	for _, p := range req.Passengers {
		switch p.Type {
		case "child":
			counts.Children++
		case "infant":
			counts.Infants++
		default:
			counts.Adults++
		}
	}
	b := models.Booking{
		ID:                s.nextID,
		Reference:         reference,
		OutboundSailingID: req.OutboundSailingID,
		ReturnSailingID:   req.ReturnSailingID,
		Contact:           models.Contact(req.Contact),
		Counts:            counts,
		Protection:        req.Protection,
		PromoCode:         req.PromoCode,
		Pricing:           req.Pricing,
		Status:            "confirmed",
		CreatedAt:         now,
	}
	s.nextID++
	s.bookings[b.ID] = b
	s.requests[b.ID] = req
	return b, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id int64) (models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (s *fakeBookingStore) ListSelections(_ context.Context, bookingID int64) ([]models.BookingSelection, error) {
	req := s.requests[bookingID]
	var out []models.BookingSelection
	for _, line := range req.Cabins {
		out = append(out, models.BookingSelection{
			BookingID: bookingID, Leg: line.Leg, Kind: "cabin",
			ItemID: line.ItemID, UnitPriceCents: line.UnitPriceCents, Quantity: line.Quantity,
		})
	}
	for _, line := range req.Meals {
		out = append(out, models.BookingSelection{
			BookingID: bookingID, Leg: line.Leg, Kind: "meal",
			ItemID: line.ItemID, UnitPriceCents: line.UnitPriceCents, Quantity: line.Quantity,
		})
	}
	return out, nil
}

func (s *fakeBookingStore) ListPassengers(_ context.Context, bookingID int64) ([]models.Passenger, error) {
	var out []models.Passenger
	for _, p := range s.requests[bookingID].Passengers {
		out = append(out, models.Passenger(p))
	}
	return out, nil
}

func (s *fakeBookingStore) ListVehicles(_ context.Context, bookingID int64) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range s.requests[bookingID].Vehicles {
		out = append(out, models.Vehicle(v))
	}
	return out, nil
}

func (s *fakeBookingStore) ReplaceSelections(_ context.Context, bookingID int64, req booking.Request) error {
	if _, ok := s.bookings[bookingID]; !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	stored := s.requests[bookingID]
	stored.Cabins = req.Cabins
	stored.Meals = req.Meals
	stored.Pricing = req.Pricing
	s.requests[bookingID] = stored

	b := s.bookings[bookingID]
	b.Pricing = req.Pricing
	s.bookings[bookingID] = b
	return nil
}

func testBookingService(sailings fakeSailingSource, store *fakeBookingStore, alerts *AlertService) BookingService {
	return BookingService{
		Sailings: sailings,
		Bookings: store,
		Alerts:   alerts,
		Fares:    pricing.DefaultConfig(),
		Now:      fixedNow,
	}
}

func testSailings() fakeSailingSource {
	return fakeSailingSource{sailings: map[int64]models.Sailing{
		11: {ID: 11, DeparturePort: "piraeus", ArrivalPort: "heraklion", BasePriceCents: 10_000},
		22: {ID: 22, DeparturePort: "heraklion", ArrivalPort: "piraeus", BasePriceCents: 8_000},
	}}
}

func submittableDraft(t *testing.T, svc BookingService, returnID int64) *models.BookingDraft {
	t.Helper()
	d, err := svc.NewDraft(context.Background(), 11, returnID)
	require.NoError(t, err)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 1})
	d.Passengers = []models.Passenger{
		{Type: "adult", FirstName: "Ana", LastName: "Silva", DateOfBirth: "1988-04-12"},
		{Type: "adult", FirstName: "Rui", LastName: "Silva", DateOfBirth: "1985-09-30"},
		{Type: "child", FirstName: "Mia", LastName: "Silva", DateOfBirth: "2018-01-05"},
	}
	d.Contact = models.Contact{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}
	return d
}

func TestNewDraftUnknownSailing(t *testing.T) {
	svc := testBookingService(testSailings(), newFakeBookingStore(), nil)
	_, err := svc.NewDraft(context.Background(), 99, 0)
	assert.True(t, domain.IsNotFound(err), "err = %v", err)
}

func TestQuoteMatchesSubmittedPricing(t *testing.T) {
	store := newFakeBookingStore()
	svc := testBookingService(testSailings(), store, nil)
	d := submittableDraft(t, svc, 22)

	quote := svc.Quote(d)
	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, quote, b.Pricing, "submission must store the same figures it quoted")
	assert.EqualValues(t, 45_000, b.Pricing.SubtotalCents)
	assert.EqualValues(t, 49_500, b.Pricing.TotalCents)
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	store := newFakeBookingStore()
	svc := testBookingService(testSailings(), store, nil)

	d, err := svc.NewDraft(context.Background(), 11, 0)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), d)
	assert.True(t, domain.IsValidation(err), "err = %v", err)
	assert.Empty(t, store.bookings, "failed submission must not persist anything")
}

func TestSubmitGeneratesReference(t *testing.T) {
	svc := testBookingService(testSailings(), newFakeBookingStore(), nil)
	d := submittableDraft(t, svc, 0)

	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b.Reference, "FB-"), "reference = %q", b.Reference)
}

func TestDraftFromBookingRoundTrips(t *testing.T) {
	store := newFakeBookingStore()
	svc := testBookingService(testSailings(), store, nil)

	d := submittableDraft(t, svc, 22)
	d.SetCabin(models.LegOutbound, "7", 6_000, 1)
	d.SetMeal(models.LegReturn, "dinner", 1_800, 2)
	d.SetProtection(true)

	original := svc.Quote(d)
	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	rebuilt, err := svc.DraftFromBooking(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, d.Counts, rebuilt.Counts)
	assert.Equal(t, 1, rebuilt.CabinQuantity(models.LegOutbound, "7"))
	assert.Equal(t, 2, rebuilt.MealQuantity(models.LegReturn, "dinner"))
	assert.Equal(t, original, svc.Quote(rebuilt), "rebuilt draft must price identically")
}

func TestAddCabinRecomputesPricing(t *testing.T) {
	store := newFakeBookingStore()
	svc := testBookingService(testSailings(), store, nil)

	d := submittableDraft(t, svc, 0)
	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	breakdown, err := svc.AddCabin(context.Background(), b.ID, models.LegOutbound, "suite", 12_000, 1, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 12_000, breakdown.CabinCents)
	assert.Equal(t, b.Pricing.TotalCents+13_200, breakdown.TotalCents, "cabin plus its tax")
	assert.Equal(t, breakdown, store.bookings[b.ID].Pricing, "stored pricing must follow")
}

func TestAddCabinRejectsNonPositiveQuantity(t *testing.T) {
	svc := testBookingService(testSailings(), newFakeBookingStore(), nil)
	_, err := svc.AddCabin(context.Background(), 1, models.LegOutbound, "suite", 12_000, 0, 0)
	assert.True(t, domain.IsValidation(err), "err = %v", err)
}

func TestAddCabinFulfillsLinkedAlert(t *testing.T) {
	alertStore := newFakeAlertStore()
	alerts := newAlertService(alertStore)

	bookingStore := newFakeBookingStore()
	svc := testBookingService(testSailings(), bookingStore, &alerts)

	d := submittableDraft(t, svc, 0)
	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	a := validAlert()
	a.Type = models.AlertTypeCabin
	a.BookingID = b.ID
	created, err := alerts.Create(context.Background(), a)
	require.NoError(t, err)
	_, err = alerts.ApplyAvailabilitySignal(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.AddCabin(context.Background(), b.ID, models.LegOutbound, "suite", 12_000, 1, created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusFulfilled, alertStore.alerts[created.ID].Status)
}

func TestAddCabinSurvivesAlertRace(t *testing.T) {
	alertStore := newFakeAlertStore()
	alerts := newAlertService(alertStore)

	bookingStore := newFakeBookingStore()
	svc := testBookingService(testSailings(), bookingStore, &alerts)

	d := submittableDraft(t, svc, 0)
	b, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	a := validAlert()
	a.Type = models.AlertTypeCabin
	a.BookingID = b.ID
	created, err := alerts.Create(context.Background(), a)
	require.NoError(t, err)
	_, err = alerts.ApplyAvailabilitySignal(context.Background(), created.ID)
	require.NoError(t, err)

	// Someone cancels the alert mid-flight; the cabin addition still lands.
	alertStore.beforeUpdate = func(s *fakeAlertStore, id int64) {
		r := s.alerts[id]
		r.Status = models.AlertStatusCancelled
		s.alerts[id] = r
	}

	breakdown, err := svc.AddCabin(context.Background(), b.ID, models.LegOutbound, "suite", 12_000, 1, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 12_000, breakdown.CabinCents)
	assert.Equal(t, models.AlertStatusCancelled, alertStore.alerts[created.ID].Status)
}
