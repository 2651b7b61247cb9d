package models

import "time"

// Sailing identifies a single scheduled departure. It is read-only input to
// the pricing and assembly code paths; capacity is advisory here and enforced
// by the inventory side before submission.
type Sailing struct {
	ID              int64     `json:"id"`
	Operator        string    `json:"operator"`
	Vessel          string    `json:"vessel"`
	DeparturePort   string    `json:"departure_port"`
	ArrivalPort     string    `json:"arrival_port"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	BasePriceCents  int64     `json:"base_price_cents"`
	SeatCapacity    int       `json:"seat_capacity"`
	VehicleCapacity int       `json:"vehicle_capacity"`
	CabinCapacity   int       `json:"cabin_capacity"`
}
