package booking

import (
	"net/mail"
	"sort"
	"strings"

	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
	"ferrybackend/internal/utils"
)

// Request is the transport-ready booking payload. It owns the mapping from
// internal names to the external contract; the embedded pricing figures are
// advisory, the server recomputes and treats mismatches as an anomaly.
type Request struct {
	OutboundSailingID int64                 `json:"outbound_sailing_id"`
	ReturnSailingID   int64                 `json:"return_sailing_id,omitempty"`
	Contact           ContactBlock          `json:"contact"`
	Passengers        []PassengerEntry      `json:"passengers"`
	Vehicles          []VehicleEntry        `json:"vehicles,omitempty"`
	Cabins            []SelectionLine       `json:"cabins,omitempty"`
	Meals             []SelectionLine       `json:"meals,omitempty"`
	Protection        bool                  `json:"cancellation_protection"`
	PromoCode         string                `json:"promo_code,omitempty"`
	Pricing           models.PriceBreakdown `json:"pricing"`
}

type ContactBlock struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type PassengerEntry struct {
	Type           string `json:"type"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	DocumentNumber string `json:"document_number,omitempty"`
}

type VehicleEntry struct {
	Type         string `json:"type"`
	Registration string `json:"registration"`
}

// SelectionLine is one cabin or meal line with its computed total.
type SelectionLine struct {
	Leg            models.Leg `json:"leg"`
	ItemID         string     `json:"item_id"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	Quantity       int        `json:"quantity"`
	LineTotalCents int64      `json:"line_total_cents"`
}

// Assemble validates the draft is complete and serializes it together with
// its breakdown. Each failed precondition yields a distinct validation
// error; on any failure nothing is produced and the draft is untouched.
func Assemble(d *models.BookingDraft, b models.PriceBreakdown) (Request, error) {
	var req Request

	if d == nil || d.Outbound == nil {
		return req, domain.ValidationError{Field: "outbound_sailing", Msg: "outbound sailing is required"}
	}
	if err := validatePassengers(d.Passengers); err != nil {
		return req, err
	}
	if err := validateContact(d.Contact); err != nil {
		return req, err
	}
	if err := validateVehicles(d.Vehicles); err != nil {
		return req, err
	}

	req.OutboundSailingID = d.Outbound.ID
	if d.Return != nil {
		req.ReturnSailingID = d.Return.ID
	}
	req.Contact = ContactBlock{
		FirstName: utils.NormalizeSpace(d.Contact.FirstName),
		LastName:  utils.NormalizeSpace(d.Contact.LastName),
		Email:     strings.TrimSpace(d.Contact.Email),
		Phone:     strings.TrimSpace(d.Contact.Phone),
	}
	for _, p := range d.Passengers {
		req.Passengers = append(req.Passengers, PassengerEntry{
			Type:           p.Type,
			FirstName:      utils.NormalizeSpace(p.FirstName),
			LastName:       utils.NormalizeSpace(p.LastName),
			DateOfBirth:    strings.TrimSpace(p.DateOfBirth),
			DocumentNumber: strings.TrimSpace(p.DocumentNumber),
		})
	}
	for _, v := range d.Vehicles {
		req.Vehicles = append(req.Vehicles, VehicleEntry{
			Type:         v.Type,
			Registration: strings.TrimSpace(v.Registration),
		})
	}

	for _, leg := range []models.Leg{models.LegOutbound, models.LegReturn} {
		req.Cabins = append(req.Cabins, selectionLines(leg, d.Cabins(leg), d.CabinUnitPrice)...)
		req.Meals = append(req.Meals, selectionLines(leg, d.Meals(leg), d.MealUnitPrice)...)
	}
	// The ledger clamps quantities at zero; a negative one here means a
	// mutation bypassed it.
	for _, line := range append(append([]SelectionLine(nil), req.Cabins...), req.Meals...) {
		if line.Quantity < 0 {
			return Request{}, domain.InvariantViolationError{Msg: "negative selection quantity reached assembly"}
		}
	}
	if b.SubtotalCents < 0 || b.TotalCents < 0 {
		return Request{}, domain.InvariantViolationError{Msg: "negative total reached assembly"}
	}

	req.Protection = d.Protection
	req.PromoCode = d.PromoCode
	req.Pricing = b
	return req, nil
}

func validatePassengers(ps []models.Passenger) error {
	if len(ps) == 0 {
		return domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}
	for _, p := range ps {
		if strings.TrimSpace(p.FirstName) == "" ||
			strings.TrimSpace(p.LastName) == "" ||
			strings.TrimSpace(p.DateOfBirth) == "" {
			return domain.ValidationError{Field: "passengers", Msg: "passenger name and date of birth are required"}
		}
	}
	return nil
}

func validateContact(c models.Contact) error {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return domain.ValidationError{Field: "contact", Msg: "contact name is required"}
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return domain.ValidationError{Field: "contact.email", Msg: "contact email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ValidationError{Field: "contact.email", Msg: "contact email is not valid", Err: err}
	}
	return nil
}

func validateVehicles(vs []models.Vehicle) error {
	for _, v := range vs {
		if strings.TrimSpace(v.Registration) == "" {
			return domain.ValidationError{Field: "vehicles", Msg: "every vehicle needs a registration"}
		}
	}
	return nil
}

func selectionLines(leg models.Leg, sel map[string]int, unitPrice func(string) int64) []SelectionLine {
	lines := make([]SelectionLine, 0, len(sel))
	for id, qty := range sel {
		price := unitPrice(id)
		lines = append(lines, SelectionLine{
			Leg:            leg,
			ItemID:         id,
			UnitPriceCents: price,
			Quantity:       qty,
			LineTotalCents: price * int64(qty),
		})
	}
	// Stable order so assembling twice from the same draft produces an
	// identical request.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}
