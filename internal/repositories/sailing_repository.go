package repositories

import (
	"context"
	"database/sql"

	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
)

// SailingRepository reads scheduled sailings. This is the only source of
// base prices and capacity for the pricing path.
type SailingRepository struct {
	DB *sql.DB
}

const sailingColumns = `id, operator, vessel, departure_port, arrival_port,
	departure, arrival, base_price_cents, seat_capacity, vehicle_capacity, cabin_capacity`

func (r SailingRepository) GetByID(ctx context.Context, id int64) (models.Sailing, error) {
	var s models.Sailing
	if id <= 0 {
		return s, domain.ValidationError{Field: "sailing_id", Msg: "id must be positive"}
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+sailingColumns+` FROM sailings WHERE id=? LIMIT 1`, id)
	if err := scanSailing(row, &s); err != nil {
		if err == sql.ErrNoRows {
			return s, domain.NotFoundError{Resource: "sailing", Err: err}
		}
		return s, domain.InternalError{Err: err}
	}
	return s, nil
}

// Search lists sailings for a route and departure date (YYYY-MM-DD).
func (r SailingRepository) Search(ctx context.Context, from, to, date string) ([]models.Sailing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+sailingColumns+`
		FROM sailings
		WHERE departure_port=? AND arrival_port=? AND DATE(departure)=?
		ORDER BY departure`, from, to, date)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.Sailing
	for rows.Next() {
		var s models.Sailing
		if err := scanSailing(rows, &s); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSailing(row rowScanner, s *models.Sailing) error {
	return row.Scan(
		&s.ID,
		&s.Operator,
		&s.Vessel,
		&s.DeparturePort,
		&s.ArrivalPort,
		&s.Departure,
		&s.Arrival,
		&s.BasePriceCents,
		&s.SeatCapacity,
		&s.VehicleCapacity,
		&s.CabinCapacity,
	)
}
