package models

import (
	"strconv"
	"strings"
)

// Leg is one directional sailing within a trip.
type Leg string

const (
	LegOutbound Leg = "outbound"
	LegReturn   Leg = "return"
)

// PassengerCounts holds traveller numbers for both legs of a trip.
// Setters clamp, so downstream fare code never sees negative counts.
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Vehicle is one entry of the vehicle selection. Registration may be empty
// while the wizard is in progress; assembly requires it.
type Vehicle struct {
	Type         string `json:"type"`
	Registration string `json:"registration"`
}

// Passenger carries per-traveller identity and document fields.
type Passenger struct {
	Type           string `json:"type"` // adult / child / infant
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	DocumentNumber string `json:"document_number"`
}

// Contact is the booking-level contact block.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// BookingDraft is the mutable, in-progress booking aggregate. It owns the
// passenger counts, vehicle list and per-leg cabin/meal selections by
// composition; callers mutate those only through the methods below.
// The draft performs no I/O and is owned by exactly one flow at a time.
type BookingDraft struct {
	Outbound *Sailing
	Return   *Sailing

	Counts     PassengerCounts
	Vehicles   []Vehicle
	Passengers []Passenger
	Contact    Contact

	Protection         bool
	PromoCode          string
	PromoDiscountCents int64

	cabins      map[Leg]map[string]int
	meals       map[Leg]map[string]int
	cabinPrices map[string]int64
	mealPrices  map[string]int64
}

// NewBookingDraft starts a draft for the given sailings. ret may be nil for
// a one-way trip.
func NewBookingDraft(outbound, ret *Sailing) *BookingDraft {
	return &BookingDraft{
		Outbound:    outbound,
		Return:      ret,
		Counts:      PassengerCounts{Adults: 1},
		cabins:      map[Leg]map[string]int{},
		meals:       map[Leg]map[string]int{},
		cabinPrices: map[string]int64{},
		mealPrices:  map[string]int64{},
	}
}

// CanonicalID normalizes cabin/meal identifiers to one stable string form.
// The source data mixes numeric and string ids ("7" vs 7 vs " 007 ");
// lookups must compare by equality on this canonical form only.
func CanonicalID(raw string) string {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// SetCounts applies passenger counts, clamped to valid ranges: at least one
// adult, no negative children/infants, and one infant per adult at most.
func (d *BookingDraft) SetCounts(c PassengerCounts) {
	if c.Adults < 1 {
		c.Adults = 1
	}
	if c.Children < 0 {
		c.Children = 0
	}
	if c.Infants < 0 {
		c.Infants = 0
	}
	if c.Infants > c.Adults {
		c.Infants = c.Adults
	}
	d.Counts = c
}

// SetVehicles replaces the vehicle list.
func (d *BookingDraft) SetVehicles(vs []Vehicle) {
	d.Vehicles = append([]Vehicle(nil), vs...)
}

// AddVehicle appends one vehicle entry.
func (d *BookingDraft) AddVehicle(v Vehicle) {
	d.Vehicles = append(d.Vehicles, v)
}

// VehicleCount equals the length of the vehicle list by construction.
func (d *BookingDraft) VehicleCount() int {
	return len(d.Vehicles)
}

// SetCabin sets the quantity for a cabin type on one leg. A quantity of zero
// or less removes the entry; absent means zero. The unit price is recorded
// for the aggregator.
func (d *BookingDraft) SetCabin(leg Leg, id string, unitPriceCents int64, qty int) {
	key := CanonicalID(id)
	if key == "" {
		return
	}
	d.cabinPrices[key] = unitPriceCents
	setQuantity(d.cabins, leg, key, qty)
}

// AdjustCabin changes a cabin quantity by delta, clamping at zero.
func (d *BookingDraft) AdjustCabin(leg Leg, id string, delta int) {
	key := CanonicalID(id)
	setQuantity(d.cabins, leg, key, d.quantity(d.cabins, leg, key)+delta)
}

// CabinQuantity returns the current quantity for a cabin type on a leg.
func (d *BookingDraft) CabinQuantity(leg Leg, id string) int {
	return d.quantity(d.cabins, leg, CanonicalID(id))
}

// Cabins returns a copy of the cabin selection for one leg.
func (d *BookingDraft) Cabins(leg Leg) map[string]int {
	return copySelection(d.cabins[leg])
}

// CabinUnitPrice returns the recorded unit price for a cabin type.
func (d *BookingDraft) CabinUnitPrice(id string) int64 {
	return d.cabinPrices[CanonicalID(id)]
}

// SetMeal sets the quantity for a meal on one leg; same semantics as SetCabin.
func (d *BookingDraft) SetMeal(leg Leg, id string, unitPriceCents int64, qty int) {
	key := CanonicalID(id)
	if key == "" {
		return
	}
	d.mealPrices[key] = unitPriceCents
	setQuantity(d.meals, leg, key, qty)
}

// AdjustMeal changes a meal quantity by delta, clamping at zero.
func (d *BookingDraft) AdjustMeal(leg Leg, id string, delta int) {
	key := CanonicalID(id)
	setQuantity(d.meals, leg, key, d.quantity(d.meals, leg, key)+delta)
}

// MealQuantity returns the current quantity for a meal on a leg.
func (d *BookingDraft) MealQuantity(leg Leg, id string) int {
	return d.quantity(d.meals, leg, CanonicalID(id))
}

// Meals returns a copy of the meal selection for one leg.
func (d *BookingDraft) Meals(leg Leg) map[string]int {
	return copySelection(d.meals[leg])
}

// MealUnitPrice returns the recorded unit price for a meal.
func (d *BookingDraft) MealUnitPrice(id string) int64 {
	return d.mealPrices[CanonicalID(id)]
}

// SetProtection toggles cancellation protection.
func (d *BookingDraft) SetProtection(on bool) {
	d.Protection = on
}

// ApplyPromo records a resolved promo code and its discount amount.
// Resolution happens outside the draft.
func (d *BookingDraft) ApplyPromo(code string, discountCents int64) {
	d.PromoCode = strings.TrimSpace(code)
	if discountCents < 0 {
		discountCents = 0
	}
	d.PromoDiscountCents = discountCents
}

// ClearPromo removes any applied promo.
func (d *BookingDraft) ClearPromo() {
	d.PromoCode = ""
	d.PromoDiscountCents = 0
}

func (d *BookingDraft) quantity(sel map[Leg]map[string]int, leg Leg, key string) int {
	if m, ok := sel[leg]; ok {
		return m[key]
	}
	return 0
}

func setQuantity(sel map[Leg]map[string]int, leg Leg, key string, qty int) {
	if key == "" {
		return
	}
	m := sel[leg]
	if qty <= 0 {
		if m != nil {
			delete(m, key)
		}
		return
	}
	if m == nil {
		m = map[string]int{}
		sel[leg] = m
	}
	m[key] = qty
}

func copySelection(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
