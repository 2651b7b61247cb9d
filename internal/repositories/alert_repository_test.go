package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
)

func alertRows(a models.AvailabilityAlert) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_email", "alert_type", "departure_port", "arrival_port",
		"departure_date", "return_date", "operator", "sailing_time",
		"adults", "children", "infants", "vehicles", "booking_id", "status",
		"created_at", "expires_at", "updated_at",
	}).AddRow(
		a.ID, a.OwnerEmail, a.Type, a.DeparturePort, a.ArrivalPort,
		a.DepartureDate, a.ReturnDate, a.Operator, a.SailingTime,
		a.Adults, a.Children, a.Infants, a.Vehicles, a.BookingID, a.Status,
		a.CreatedAt, a.ExpiresAt, a.UpdatedAt,
	)
}

func sampleAlert() models.AvailabilityAlert {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.AvailabilityAlert{
		ID:            5,
		OwnerEmail:    "ana@example.com",
		Type:          models.AlertTypePassenger,
		DeparturePort: "piraeus",
		ArrivalPort:   "heraklion",
		DepartureDate: "2026-04-10",
		Adults:        2,
		Status:        models.AlertStatusActive,
		CreatedAt:     now,
		ExpiresAt:     now.AddDate(0, 0, 30),
		UpdatedAt:     now,
	}
}

func TestAlertRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO availability_alerts").
		WillReturnResult(sqlmock.NewResult(5, 1))

	a := sampleAlert()
	a.ID = 0
	repo := AlertRepository{DB: db}
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.ID != 5 {
		t.Errorf("id = %d, want 5", a.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlertRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	want := sampleAlert()
	mock.ExpectQuery("SELECT (.+) FROM availability_alerts WHERE id=").
		WithArgs(want.ID).
		WillReturnRows(alertRows(want))

	repo := AlertRepository{DB: db}
	got, err := repo.GetByID(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.OwnerEmail != want.OwnerEmail || got.Status != want.Status {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlertRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM availability_alerts WHERE id=").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := AlertRepository{DB: db}
	if _, err := repo.GetByID(context.Background(), 99); !domain.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlertRepositoryUpdateStatusCAS(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := AlertRepository{DB: db}

	// Matching prior status updates one row.
	mock.ExpectExec("UPDATE availability_alerts").
		WithArgs(models.AlertStatusNotified, now, int64(5), models.AlertStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateStatus(context.Background(), 5, models.AlertStatusActive, models.AlertStatusNotified, now)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	// Stale prior status matches nothing; the caller turns this into a
	// concurrent-modification error.
	mock.ExpectExec("UPDATE availability_alerts").
		WithArgs(models.AlertStatusCancelled, now, int64(5), models.AlertStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err = repo.UpdateStatus(context.Background(), 5, models.AlertStatusActive, models.AlertStatusCancelled, now)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlertRepositoryCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT status, COUNT").
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("active", 2).
			AddRow("notified", 1).
			AddRow("cancelled", 4))

	repo := AlertRepository{DB: db}
	counts, err := repo.CountByStatus(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[models.AlertStatusActive] != 2 || counts[models.AlertStatusNotified] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlertRepositoryListDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	before := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM availability_alerts").
		WithArgs(models.AlertStatusActive, before).
		WillReturnRows(alertRows(sampleAlert()))

	repo := AlertRepository{DB: db}
	due, err := repo.ListDue(context.Background(), before)
	if err != nil {
		t.Fatalf("ListDue() error = %v", err)
	}
	if len(due) != 1 || due[0].ID != 5 {
		t.Errorf("due = %+v, want the sample alert", due)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
