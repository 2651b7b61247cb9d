package repositories

import (
	"context"
	"database/sql"
	"time"

	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
)

// AlertRepository owns AvailabilityAlert records. Status changes go through
// UpdateStatus, a compare-and-swap on the stored status, so racing
// transitions lose cleanly instead of overwriting each other.
type AlertRepository struct {
	DB *sql.DB
}

const alertColumns = `id, owner_email, alert_type, departure_port, arrival_port,
	departure_date, return_date, operator, sailing_time,
	adults, children, infants, vehicles, booking_id, status,
	created_at, expires_at, updated_at`

func (r AlertRepository) Create(ctx context.Context, a *models.AvailabilityAlert) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO availability_alerts
			(owner_email, alert_type, departure_port, arrival_port,
			 departure_date, return_date, operator, sailing_time,
			 adults, children, infants, vehicles, booking_id, status,
			 created_at, expires_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.OwnerEmail, a.Type, a.DeparturePort, a.ArrivalPort,
		a.DepartureDate, a.ReturnDate, a.Operator, a.SailingTime,
		a.Adults, a.Children, a.Infants, a.Vehicles, a.BookingID, a.Status,
		a.CreatedAt, a.ExpiresAt, a.UpdatedAt,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	a.ID = id
	return nil
}

func (r AlertRepository) GetByID(ctx context.Context, id int64) (models.AvailabilityAlert, error) {
	var a models.AvailabilityAlert
	row := r.DB.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM availability_alerts WHERE id=? LIMIT 1`, id)
	if err := scanAlert(row, &a); err != nil {
		if err == sql.ErrNoRows {
			return a, domain.NotFoundError{Resource: "alert", Err: err}
		}
		return a, domain.InternalError{Err: err}
	}
	return a, nil
}

// ListByOwner returns an owner's alerts, optionally filtered by status.
func (r AlertRepository) ListByOwner(ctx context.Context, ownerEmail string, status models.AlertStatus) ([]models.AvailabilityAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM availability_alerts WHERE owner_email=?`
	args := []any{ownerEmail}
	if status != "" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.AvailabilityAlert
	for rows.Next() {
		var a models.AvailabilityAlert
		if err := scanAlert(rows, &a); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListDue returns active alerts whose window elapsed before the given time.
func (r AlertRepository) ListDue(ctx context.Context, before time.Time) ([]models.AvailabilityAlert, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+alertColumns+`
		FROM availability_alerts
		WHERE status=? AND expires_at<=?`, models.AlertStatusActive, before)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.AvailabilityAlert
	for rows.Next() {
		var a models.AvailabilityAlert
		if err := scanAlert(rows, &a); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// UpdateStatus applies from -> to only while the stored status still equals
// from, and reports the number of rows that matched. Zero means the alert
// changed underneath the caller.
func (r AlertRepository) UpdateStatus(ctx context.Context, id int64, from, to models.AlertStatus, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE availability_alerts
		SET status=?, updated_at=?
		WHERE id=? AND status=?`, to, now, id, from)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return affected, nil
}

// Delete removes an alert record. Callers only do this after a cancelled
// transition has reached the store.
func (r AlertRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM availability_alerts WHERE id=?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// CountByStatus returns per-status totals for one owner.
func (r AlertRepository) CountByStatus(ctx context.Context, ownerEmail string) (map[models.AlertStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM availability_alerts
		WHERE owner_email=?
		GROUP BY status`, ownerEmail)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := map[models.AlertStatus]int{}
	for rows.Next() {
		var status models.AlertStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func scanAlert(row rowScanner, a *models.AvailabilityAlert) error {
	var returnDate, operator, sailingTime sql.NullString
	var bookingID sql.NullInt64
	err := row.Scan(
		&a.ID,
		&a.OwnerEmail,
		&a.Type,
		&a.DeparturePort,
		&a.ArrivalPort,
		&a.DepartureDate,
		&returnDate,
		&operator,
		&sailingTime,
		&a.Adults,
		&a.Children,
		&a.Infants,
		&a.Vehicles,
		&bookingID,
		&a.Status,
		&a.CreatedAt,
		&a.ExpiresAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	a.ReturnDate = returnDate.String
	a.Operator = operator.String
	a.SailingTime = sailingTime.String
	a.BookingID = bookingID.Int64
	return nil
}
