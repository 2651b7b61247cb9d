package pricing

import (
	"math"

	"ferrybackend/internal/domain/models"
)

// Config holds the fare constants. It is injected rather than read from
// globals so tests can vary rates deterministically.
type Config struct {
	ChildFactor           float64 `json:"child_factor"`
	InfantFactor          float64 `json:"infant_factor"`
	TaxRate               float64 `json:"tax_rate"`
	VehicleSurchargeCents int64   `json:"vehicle_surcharge_cents"`
	ProtectionCents       int64   `json:"protection_cents"`
}

// DefaultConfig returns the production fare constants.
func DefaultConfig() Config {
	return Config{
		ChildFactor:           0.5,
		InfantFactor:          0,
		TaxRate:               0.10,
		VehicleSurchargeCents: 4_500,
		ProtectionCents:       1_500,
	}
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// PassengerFare returns the per-leg fare for one sailing's base price:
// adults pay full base, children the child factor, infants the infant
// factor. Total over non-negative inputs; zero counts or a zero base are
// valid and yield zero.
func PassengerFare(basePriceCents int64, c models.PassengerCounts, cfg Config) int64 {
	if basePriceCents < 0 {
		basePriceCents = 0
	}
	adults := int64(max(c.Adults, 0))
	children := int64(max(c.Children, 0))
	infants := int64(max(c.Infants, 0))

	fare := adults * basePriceCents
	fare += roundMoney(float64(children) * float64(basePriceCents) * cfg.ChildFactor)
	fare += roundMoney(float64(infants) * float64(basePriceCents) * cfg.InfantFactor)
	return fare
}

// VehicleFare returns the per-leg vehicle surcharge for count vehicles.
func VehicleFare(count int, cfg Config) int64 {
	if count < 0 {
		count = 0
	}
	return int64(count) * cfg.VehicleSurchargeCents
}

// ComputeBreakdown derives the authoritative price decomposition of a draft.
// Every place that displays or submits a total goes through this one path.
//
// The vehicle surcharge is charged per leg, so it doubles when a return leg
// exists. The promo discount floors the subtotal at zero and tax applies to
// the discounted subtotal.
func ComputeBreakdown(d *models.BookingDraft, cfg Config) models.PriceBreakdown {
	var b models.PriceBreakdown
	if d == nil {
		return b
	}

	if d.Outbound != nil {
		b.OutboundFareCents = PassengerFare(d.Outbound.BasePriceCents, d.Counts, cfg)
	}
	if d.Return != nil {
		b.ReturnFareCents = PassengerFare(d.Return.BasePriceCents, d.Counts, cfg)
	}

	b.VehicleCents = VehicleFare(d.VehicleCount(), cfg)
	if d.Return != nil {
		b.VehicleCents *= 2
	}

	for _, leg := range []models.Leg{models.LegOutbound, models.LegReturn} {
		for id, qty := range d.Cabins(leg) {
			b.CabinCents += d.CabinUnitPrice(id) * int64(qty)
		}
		for id, qty := range d.Meals(leg) {
			b.MealCents += d.MealUnitPrice(id) * int64(qty)
		}
	}

	if d.Protection {
		b.ProtectionCents = cfg.ProtectionCents
	}
	b.DiscountCents = d.PromoDiscountCents

	b.SubtotalCents = b.OutboundFareCents + b.ReturnFareCents + b.VehicleCents +
		b.CabinCents + b.MealCents + b.ProtectionCents - b.DiscountCents
	if b.SubtotalCents < 0 {
		b.SubtotalCents = 0
	}

	b.TaxCents = roundMoney(float64(b.SubtotalCents) * cfg.TaxRate)
	b.TotalCents = b.SubtotalCents + b.TaxCents
	return b
}
