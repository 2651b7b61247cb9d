package models

import "time"

type AlertType string

const (
	AlertTypePassenger AlertType = "passenger"
	AlertTypeVehicle   AlertType = "vehicle"
	AlertTypeCabin     AlertType = "cabin"
)

type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusNotified  AlertStatus = "notified"
	AlertStatusFulfilled AlertStatus = "fulfilled"
	AlertStatusExpired   AlertStatus = "expired"
	AlertStatusCancelled AlertStatus = "cancelled"
)

// Terminal reports whether no further transition is defined out of s.
func (s AlertStatus) Terminal() bool {
	switch s {
	case AlertStatusFulfilled, AlertStatusExpired, AlertStatusCancelled:
		return true
	}
	return false
}

// alertTransitions is the full legal transition table. Anything not listed
// is an invalid transition, never a silent no-op.
var alertTransitions = map[AlertStatus][]AlertStatus{
	AlertStatusActive:   {AlertStatusNotified, AlertStatusCancelled, AlertStatusExpired},
	AlertStatusNotified: {AlertStatusFulfilled, AlertStatusCancelled},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to AlertStatus) bool {
	for _, next := range alertTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AvailabilityAlert is a standing request to be notified when scarce
// inventory (seats, vehicle space or a cabin) frees up on a route/date.
// Status changes go through the alert service transitions only; consumers
// never assign Status directly.
type AvailabilityAlert struct {
	ID            int64       `json:"id"`
	OwnerEmail    string      `json:"owner_email"`
	Type          AlertType   `json:"type"`
	DeparturePort string      `json:"departure_port"`
	ArrivalPort   string      `json:"arrival_port"`
	DepartureDate string      `json:"departure_date"`
	ReturnDate    string      `json:"return_date,omitempty"`
	Operator      string      `json:"operator,omitempty"`
	SailingTime   string      `json:"sailing_time,omitempty"`
	Adults        int         `json:"adults"`
	Children      int         `json:"children"`
	Infants       int         `json:"infants"`
	Vehicles      int         `json:"vehicles"`
	BookingID     int64       `json:"booking_id,omitempty"` // cabin alerts only
	Status        AlertStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	ExpiresAt     time.Time   `json:"expires_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DaysRemaining is a display hint: whole days until expiry while the alert
// is still active, zero otherwise. A fulfilled alert therefore clears it.
func (a *AvailabilityAlert) DaysRemaining(now time.Time) int {
	if a.Status != AlertStatusActive {
		return 0
	}
	left := a.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left.Hours() / 24)
}

// Due reports whether an active alert has outlived its window.
func (a *AvailabilityAlert) Due(now time.Time) bool {
	return a.Status == AlertStatusActive && !now.Before(a.ExpiresAt)
}
