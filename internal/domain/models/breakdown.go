package models

// PriceBreakdown is the derived monetary decomposition of a draft's total.
// It is recomputable at any time from the draft plus the fare configuration
// and is never the source of truth; amounts are integer euro-cents so that
// recomputation is bit-identical.
type PriceBreakdown struct {
	OutboundFareCents int64 `json:"outbound_fare_cents"`
	ReturnFareCents   int64 `json:"return_fare_cents"`
	VehicleCents      int64 `json:"vehicle_cents"`
	CabinCents        int64 `json:"cabin_cents"`
	MealCents         int64 `json:"meal_cents"`
	ProtectionCents   int64 `json:"protection_cents"`
	DiscountCents     int64 `json:"discount_cents"`
	SubtotalCents     int64 `json:"subtotal_cents"`
	TaxCents          int64 `json:"tax_cents"`
	TotalCents        int64 `json:"total_cents"`
}
