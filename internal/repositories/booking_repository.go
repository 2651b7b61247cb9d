package repositories

import (
	"context"
	"database/sql"
	"time"

	"ferrybackend/internal/booking"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
)

// BookingRepository persists submitted bookings and their selection lines.
type BookingRepository struct {
	DB *sql.DB
}

// Create stores an assembled request under the given reference code. The
// insert of the booking row and its selection lines is transactional, so a
// rejected submission leaves nothing behind.
func (r BookingRepository) Create(ctx context.Context, reference string, req booking.Request, now time.Time) (models.Booking, error) {
	var b models.Booking

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return b, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings
			(reference, outbound_sailing_id, return_sailing_id,
			 contact_first_name, contact_last_name, contact_email, contact_phone,
			 adults, children, infants,
			 protection, promo_code,
			 outbound_fare_cents, return_fare_cents, vehicle_cents, cabin_cents,
			 meal_cents, protection_cents, discount_cents, subtotal_cents,
			 tax_cents, total_cents,
			 status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		reference, req.OutboundSailingID, nullInt(req.ReturnSailingID),
		req.Contact.FirstName, req.Contact.LastName, req.Contact.Email, req.Contact.Phone,
		countOf(req.Passengers, "adult"), countOf(req.Passengers, "child"), countOf(req.Passengers, "infant"),
		req.Protection, req.PromoCode,
		req.Pricing.OutboundFareCents, req.Pricing.ReturnFareCents, req.Pricing.VehicleCents, req.Pricing.CabinCents,
		req.Pricing.MealCents, req.Pricing.ProtectionCents, req.Pricing.DiscountCents, req.Pricing.SubtotalCents,
		req.Pricing.TaxCents, req.Pricing.TotalCents,
		"confirmed", now,
	)
	if err != nil {
		return b, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return b, domain.InternalError{Err: err}
	}

	for _, p := range req.Passengers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_passengers
				(booking_id, passenger_type, first_name, last_name, date_of_birth, document_number)
			VALUES (?,?,?,?,?,?)`,
			id, p.Type, p.FirstName, p.LastName, p.DateOfBirth, p.DocumentNumber,
		); err != nil {
			return b, domain.InternalError{Err: err}
		}
	}
	for _, v := range req.Vehicles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_vehicles (booking_id, vehicle_type, registration)
			VALUES (?,?,?)`,
			id, v.Type, v.Registration,
		); err != nil {
			return b, domain.InternalError{Err: err}
		}
	}
	if err := insertSelections(ctx, tx, id, "cabin", req.Cabins); err != nil {
		return b, err
	}
	if err := insertSelections(ctx, tx, id, "meal", req.Meals); err != nil {
		return b, err
	}

	if err := tx.Commit(); err != nil {
		return b, domain.InternalError{Err: err}
	}

	b = models.Booking{
		ID:                id,
		Reference:         reference,
		OutboundSailingID: req.OutboundSailingID,
		ReturnSailingID:   req.ReturnSailingID,
		Contact: models.Contact{
			FirstName: req.Contact.FirstName,
			LastName:  req.Contact.LastName,
			Email:     req.Contact.Email,
			Phone:     req.Contact.Phone,
		},
		Counts: models.PassengerCounts{
			Adults:   countOf(req.Passengers, "adult"),
			Children: countOf(req.Passengers, "child"),
			Infants:  countOf(req.Passengers, "infant"),
		},
		Protection: req.Protection,
		PromoCode:  req.PromoCode,
		Pricing:    req.Pricing,
		Status:     "confirmed",
		CreatedAt:  now,
	}
	return b, nil
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	var returnSailing sql.NullInt64
	var promo sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, reference, outbound_sailing_id, return_sailing_id,
			contact_first_name, contact_last_name, contact_email, contact_phone,
			adults, children, infants,
			protection, promo_code,
			outbound_fare_cents, return_fare_cents, vehicle_cents, cabin_cents,
			meal_cents, protection_cents, discount_cents, subtotal_cents,
			tax_cents, total_cents,
			status, created_at
		FROM bookings WHERE id=? LIMIT 1`, id).Scan(
		&b.ID, &b.Reference, &b.OutboundSailingID, &returnSailing,
		&b.Contact.FirstName, &b.Contact.LastName, &b.Contact.Email, &b.Contact.Phone,
		&b.Counts.Adults, &b.Counts.Children, &b.Counts.Infants,
		&b.Protection, &promo,
		&b.Pricing.OutboundFareCents, &b.Pricing.ReturnFareCents, &b.Pricing.VehicleCents, &b.Pricing.CabinCents,
		&b.Pricing.MealCents, &b.Pricing.ProtectionCents, &b.Pricing.DiscountCents, &b.Pricing.SubtotalCents,
		&b.Pricing.TaxCents, &b.Pricing.TotalCents,
		&b.Status, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return b, domain.InternalError{Err: err}
	}
	b.ReturnSailingID = returnSailing.Int64
	b.PromoCode = promo.String
	return b, nil
}

// ListSelections returns the persisted cabin/meal lines of a booking.
func (r BookingRepository) ListSelections(ctx context.Context, bookingID int64) ([]models.BookingSelection, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT booking_id, leg, kind, item_id, unit_price_cents, quantity
		FROM booking_selections
		WHERE booking_id=?
		ORDER BY kind, leg, item_id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.BookingSelection
	for rows.Next() {
		var s models.BookingSelection
		if err := rows.Scan(&s.BookingID, &s.Leg, &s.Kind, &s.ItemID, &s.UnitPriceCents, &s.Quantity); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ReplaceSelections rewrites a booking's selection lines and pricing in one
// transaction. Used when a cabin is added to an existing booking through the
// standard assembly path.
func (r BookingRepository) ReplaceSelections(ctx context.Context, bookingID int64, req booking.Request) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_selections WHERE booking_id=?`, bookingID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := insertSelections(ctx, tx, bookingID, "cabin", req.Cabins); err != nil {
		return err
	}
	if err := insertSelections(ctx, tx, bookingID, "meal", req.Meals); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET
			cabin_cents=?, meal_cents=?, discount_cents=?, subtotal_cents=?,
			tax_cents=?, total_cents=?
		WHERE id=?`,
		req.Pricing.CabinCents, req.Pricing.MealCents, req.Pricing.DiscountCents, req.Pricing.SubtotalCents,
		req.Pricing.TaxCents, req.Pricing.TotalCents,
		bookingID,
	); err != nil {
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// ListPassengers returns the persisted passenger entries of a booking.
func (r BookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]models.Passenger, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT passenger_type, first_name, last_name, date_of_birth, document_number
		FROM booking_passengers
		WHERE booking_id=?
		ORDER BY id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.Passenger
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Type, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.DocumentNumber); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListVehicles returns the persisted vehicle entries of a booking.
func (r BookingRepository) ListVehicles(ctx context.Context, bookingID int64) ([]models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT vehicle_type, registration
		FROM booking_vehicles
		WHERE booking_id=?
		ORDER BY id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.Type, &v.Registration); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func insertSelections(ctx context.Context, tx *sql.Tx, bookingID int64, kind string, lines []booking.SelectionLine) error {
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_selections (booking_id, leg, kind, item_id, unit_price_cents, quantity)
			VALUES (?,?,?,?,?,?)`,
			bookingID, line.Leg, kind, line.ItemID, line.UnitPriceCents, line.Quantity,
		); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}

func countOf(ps []booking.PassengerEntry, typ string) int {
	n := 0
	for _, p := range ps {
		if p.Type == typ {
			n++
		}
	}
	return n
}

func nullInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
