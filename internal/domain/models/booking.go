package models

import "time"

// Booking is a persisted, submitted booking. The stored pricing figures are
// the client-advisory copy from submission time; the server-side recompute
// is the authoritative one and mismatches are reported, not overwritten.
type Booking struct {
	ID                int64          `json:"id"`
	Reference         string         `json:"reference"`
	OutboundSailingID int64          `json:"outbound_sailing_id"`
	ReturnSailingID   int64          `json:"return_sailing_id,omitempty"`
	Contact           Contact        `json:"contact"`
	Counts            PassengerCounts `json:"counts"`
	Protection        bool           `json:"protection"`
	PromoCode         string         `json:"promo_code,omitempty"`
	Pricing           PriceBreakdown `json:"pricing"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
}

// BookingSelection is one persisted cabin or meal line of a booking.
type BookingSelection struct {
	BookingID      int64  `json:"booking_id"`
	Leg            Leg    `json:"leg"`
	Kind           string `json:"kind"` // cabin / meal
	ItemID         string `json:"item_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}
