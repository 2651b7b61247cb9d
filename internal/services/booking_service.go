package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ferrybackend/internal/booking"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
	"ferrybackend/internal/pricing"
	"ferrybackend/internal/utils"
)

// SailingSource supplies scheduled sailings. Failures surface as "sailing
// unavailable"; retries are the HTTP client's business, not ours.
type SailingSource interface {
	GetByID(ctx context.Context, id int64) (models.Sailing, error)
	Search(ctx context.Context, from, to, date string) ([]models.Sailing, error)
}

// BookingStore persists submitted bookings.
type BookingStore interface {
	Create(ctx context.Context, reference string, req booking.Request, now time.Time) (models.Booking, error)
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	ListSelections(ctx context.Context, bookingID int64) ([]models.BookingSelection, error)
	ListPassengers(ctx context.Context, bookingID int64) ([]models.Passenger, error)
	ListVehicles(ctx context.Context, bookingID int64) ([]models.Vehicle, error)
	ReplaceSelections(ctx context.Context, bookingID int64, req booking.Request) error
}

// BookingService owns the draft -> request -> stored booking path. Pricing
// always goes through pricing.ComputeBreakdown so every display and the
// final submission use the same figures.
type BookingService struct {
	Sailings  SailingSource
	Bookings  BookingStore
	Alerts    *AlertService
	Fares     pricing.Config
	Now       func() time.Time
	RequestID string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// NewDraft starts a booking draft from a selected sailing, with an optional
// return leg.
func (s BookingService) NewDraft(ctx context.Context, outboundID, returnID int64) (*models.BookingDraft, error) {
	out, err := s.Sailings.GetByID(ctx, outboundID)
	if err != nil {
		return nil, err
	}
	var ret *models.Sailing
	if returnID > 0 {
		r, err := s.Sailings.GetByID(ctx, returnID)
		if err != nil {
			return nil, err
		}
		ret = &r
	}
	return models.NewBookingDraft(&out, ret), nil
}

// Quote derives the current price breakdown for a draft.
func (s BookingService) Quote(d *models.BookingDraft) models.PriceBreakdown {
	return pricing.ComputeBreakdown(d, s.Fares)
}

// Submit assembles and stores a draft. On any error the draft is preserved
// unchanged so the user can correct and retry.
func (s BookingService) Submit(ctx context.Context, d *models.BookingDraft) (models.Booking, error) {
	breakdown := pricing.ComputeBreakdown(d, s.Fares)
	req, err := booking.Assemble(d, breakdown)
	if err != nil {
		return models.Booking{}, err
	}

	reference := newReference()
	b, err := s.Bookings.Create(ctx, reference, req, s.now())
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "bookings", "submit", fmt.Sprintf("booking_id=%d reference=%s", b.ID, b.Reference))
	return b, nil
}

// DraftFromBooking reconstructs a draft-shaped view over a stored booking's
// selections, so adding a cabin later reuses the exact same ledger,
// aggregator and assembler path as a fresh booking.
func (s BookingService) DraftFromBooking(ctx context.Context, bookingID int64) (*models.BookingDraft, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	out, err := s.Sailings.GetByID(ctx, b.OutboundSailingID)
	if err != nil {
		return nil, err
	}
	var ret *models.Sailing
	if b.ReturnSailingID > 0 {
		r, err := s.Sailings.GetByID(ctx, b.ReturnSailingID)
		if err != nil {
			return nil, err
		}
		ret = &r
	}

	d := models.NewBookingDraft(&out, ret)
	d.SetCounts(b.Counts)
	d.Contact = b.Contact
	d.SetProtection(b.Protection)
	d.ApplyPromo(b.PromoCode, b.Pricing.DiscountCents)

	passengers, err := s.Bookings.ListPassengers(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	d.Passengers = passengers

	vehicles, err := s.Bookings.ListVehicles(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	d.SetVehicles(vehicles)

	selections, err := s.Bookings.ListSelections(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	for _, sel := range selections {
		switch sel.Kind {
		case "cabin":
			d.SetCabin(sel.Leg, sel.ItemID, sel.UnitPriceCents, sel.Quantity)
		case "meal":
			d.SetMeal(sel.Leg, sel.ItemID, sel.UnitPriceCents, sel.Quantity)
		}
	}
	return d, nil
}

// AddCabin adds a cabin to an existing booking through the standard
// assembly path and, when the addition came from a notified cabin alert,
// completes that alert.
func (s BookingService) AddCabin(ctx context.Context, bookingID int64, leg models.Leg, cabinID string, unitPriceCents int64, qty int, alertID int64) (models.PriceBreakdown, error) {
	if qty <= 0 {
		return models.PriceBreakdown{}, domain.ValidationError{Field: "quantity", Msg: "quantity must be positive"}
	}

	d, err := s.DraftFromBooking(ctx, bookingID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}

	current := d.CabinQuantity(leg, cabinID)
	d.SetCabin(leg, cabinID, unitPriceCents, current+qty)

	breakdown := pricing.ComputeBreakdown(d, s.Fares)
	req, err := booking.Assemble(d, breakdown)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	if err := s.Bookings.ReplaceSelections(ctx, bookingID, req); err != nil {
		return models.PriceBreakdown{}, err
	}
	utils.LogEvent(s.RequestID, "bookings", "add_cabin", fmt.Sprintf("booking_id=%d cabin=%s qty=%d", bookingID, cabinID, qty))

	// The cabin addition stands on its own; losing the alert race only
	// means someone else already resolved the alert.
	if alertID > 0 && s.Alerts != nil {
		if _, err := s.Alerts.FulfillLinked(ctx, alertID, bookingID); err != nil {
			utils.LogError(s.RequestID, "bookings", "fulfill_alert", err)
		}
	}
	return breakdown, nil
}

func newReference() string {
	id := uuid.New()
	return fmt.Sprintf("FB-%X", id[:6])
}
