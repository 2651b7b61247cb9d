package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ferrybackend/internal/cache"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
	"ferrybackend/internal/utils"
)

// AlertStore is the persistence contract for availability alerts. Status
// changes go through UpdateStatus, which must be a compare-and-swap on the
// stored status reporting how many rows matched.
type AlertStore interface {
	Create(ctx context.Context, a *models.AvailabilityAlert) error
	GetByID(ctx context.Context, id int64) (models.AvailabilityAlert, error)
	ListByOwner(ctx context.Context, ownerEmail string, status models.AlertStatus) ([]models.AvailabilityAlert, error)
	ListDue(ctx context.Context, before time.Time) ([]models.AvailabilityAlert, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.AlertStatus, now time.Time) (int64, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, ownerEmail string) (map[models.AlertStatus]int, error)
}

// AlertService drives the availability-alert lifecycle. Transitions are
// validated against the legal table, then applied with optimistic
// concurrency: the store only writes while the status still matches what
// this service read, and a lost race surfaces as ConcurrentModification.
type AlertService struct {
	Store      AlertStore
	Counts     cache.AlertCountCache
	WindowDays int
	Now        func() time.Time
	RequestID  string
}

func (s AlertService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Create registers a new alert in the active state with its expiry window
// fixed at creation.
func (s AlertService) Create(ctx context.Context, a models.AvailabilityAlert) (models.AvailabilityAlert, error) {
	a.OwnerEmail = strings.ToLower(strings.TrimSpace(a.OwnerEmail))
	a.DeparturePort = utils.NormalizePort(a.DeparturePort)
	a.ArrivalPort = utils.NormalizePort(a.ArrivalPort)

	if a.OwnerEmail == "" {
		return a, domain.ValidationError{Field: "owner_email", Msg: "owner email is required"}
	}
	switch a.Type {
	case models.AlertTypePassenger, models.AlertTypeVehicle, models.AlertTypeCabin:
	default:
		return a, domain.ValidationError{Field: "type", Msg: "unknown alert type"}
	}
	if a.DeparturePort == "" || a.ArrivalPort == "" {
		return a, domain.ValidationError{Field: "route", Msg: "departure and arrival ports are required"}
	}
	if _, err := utils.ParseDate(a.DepartureDate); err != nil {
		return a, domain.ValidationError{Field: "departure_date", Msg: "departure date must be YYYY-MM-DD", Err: err}
	}
	if strings.TrimSpace(a.ReturnDate) != "" {
		if _, err := utils.ParseDate(a.ReturnDate); err != nil {
			return a, domain.ValidationError{Field: "return_date", Msg: "return date must be YYYY-MM-DD", Err: err}
		}
	}
	// A linked booking only means something for cabin alerts.
	if a.Type != models.AlertTypeCabin {
		a.BookingID = 0
	}

	now := s.now()
	a.Status = models.AlertStatusActive
	a.CreatedAt = now
	a.UpdatedAt = now
	a.ExpiresAt = now.AddDate(0, 0, s.WindowDays)

	if err := s.Store.Create(ctx, &a); err != nil {
		return a, err
	}
	s.Counts.Invalidate(ctx, a.OwnerEmail)
	utils.LogEvent(s.RequestID, "alerts", "create", fmt.Sprintf("alert_id=%d type=%s", a.ID, a.Type))
	return a, nil
}

// ApplyAvailabilitySignal is the only mutator for active -> notified. The
// signal itself is produced outside this service (a backend inventory
// sweep); this just accepts the resulting status change.
func (s AlertService) ApplyAvailabilitySignal(ctx context.Context, id int64) (models.AvailabilityAlert, error) {
	return s.transition(ctx, id, models.AlertStatusNotified, "")
}

// Cancel is user-initiated and requires the alert owner's email for
// authorization. Legal from active (stop watching) and from notified
// (decline to act).
func (s AlertService) Cancel(ctx context.Context, id int64, ownerEmail string) (models.AvailabilityAlert, error) {
	return s.transition(ctx, id, models.AlertStatusCancelled, ownerEmail)
}

// Fulfill marks a notified alert as acted upon by its owner.
func (s AlertService) Fulfill(ctx context.Context, id int64, ownerEmail string) (models.AvailabilityAlert, error) {
	return s.transition(ctx, id, models.AlertStatusFulfilled, ownerEmail)
}

// FulfillLinked completes a notified cabin alert after a successful cabin
// addition to its linked booking. The booking id must match the link.
func (s AlertService) FulfillLinked(ctx context.Context, id, bookingID int64) (models.AvailabilityAlert, error) {
	a, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return a, err
	}
	if a.Type != models.AlertTypeCabin || a.BookingID != bookingID {
		return a, domain.ValidationError{Field: "alert_id", Msg: "alert is not linked to this booking"}
	}
	return s.transition(ctx, id, models.AlertStatusFulfilled, "")
}

// ExpireDue sweeps active alerts whose window has elapsed. Races with a
// concurrent notify or cancel are expected and skipped.
func (s AlertService) ExpireDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.Store.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, a := range due {
		affected, err := s.Store.UpdateStatus(ctx, a.ID, models.AlertStatusActive, models.AlertStatusExpired, now)
		if err != nil {
			utils.LogError(s.RequestID, "alerts", "expire", err)
			continue
		}
		if affected == 0 {
			continue
		}
		s.Counts.Invalidate(ctx, a.OwnerEmail)
		expired++
	}
	if expired > 0 {
		utils.LogEvent(s.RequestID, "alerts", "expire", fmt.Sprintf("expired=%d", expired))
	}
	return expired, nil
}

// List returns an owner's alerts, optionally filtered by status.
func (s AlertService) List(ctx context.Context, ownerEmail string, status models.AlertStatus) ([]models.AvailabilityAlert, error) {
	if status != "" {
		switch status {
		case models.AlertStatusActive, models.AlertStatusNotified, models.AlertStatusFulfilled,
			models.AlertStatusExpired, models.AlertStatusCancelled:
		default:
			return nil, domain.ValidationError{Field: "status", Msg: "unknown status"}
		}
	}
	return s.Store.ListByOwner(ctx, strings.ToLower(strings.TrimSpace(ownerEmail)), status)
}

// CountsFor returns the owner's active/notified tally, served from the
// cache when possible.
func (s AlertService) CountsFor(ctx context.Context, ownerEmail string) (cache.AlertCounts, error) {
	ownerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	if counts, ok := s.Counts.Get(ctx, ownerEmail); ok {
		return counts, nil
	}
	byStatus, err := s.Store.CountByStatus(ctx, ownerEmail)
	if err != nil {
		return cache.AlertCounts{}, err
	}
	counts := cache.AlertCounts{
		Active:   byStatus[models.AlertStatusActive],
		Notified: byStatus[models.AlertStatusNotified],
	}
	s.Counts.Set(ctx, ownerEmail, counts)
	return counts, nil
}

// Remove deletes a terminal alert record for its owner. Live alerts must be
// cancelled first so the removal is always the result of a completed
// transition.
func (s AlertService) Remove(ctx context.Context, id int64, ownerEmail string) error {
	a, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(a, ownerEmail); err != nil {
		return err
	}
	if !a.Status.Terminal() {
		return domain.InvalidTransitionError{From: string(a.Status), To: "removed"}
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Counts.Invalidate(ctx, a.OwnerEmail)
	return nil
}

// transition re-reads the current status, validates the change, then applies
// it compare-and-swap style. ownerEmail is checked when non-empty.
func (s AlertService) transition(ctx context.Context, id int64, to models.AlertStatus, ownerEmail string) (models.AvailabilityAlert, error) {
	a, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return a, err
	}
	if ownerEmail != "" {
		if err := s.authorize(a, ownerEmail); err != nil {
			return a, err
		}
	}
	if !models.CanTransition(a.Status, to) {
		return a, domain.InvalidTransitionError{From: string(a.Status), To: string(to)}
	}

	now := s.now()
	affected, err := s.Store.UpdateStatus(ctx, id, a.Status, to, now)
	if err != nil {
		return a, err
	}
	if affected == 0 {
		return a, domain.ConcurrentModificationError{Resource: "alert"}
	}

	a.Status = to
	a.UpdatedAt = now
	s.Counts.Invalidate(ctx, a.OwnerEmail)
	utils.LogEvent(s.RequestID, "alerts", "transition", fmt.Sprintf("alert_id=%d status=%s", a.ID, a.Status))
	return a, nil
}

func (s AlertService) authorize(a models.AvailabilityAlert, ownerEmail string) error {
	if !strings.EqualFold(strings.TrimSpace(ownerEmail), a.OwnerEmail) {
		return domain.UnauthorizedError{Msg: "alert belongs to a different user"}
	}
	return nil
}
