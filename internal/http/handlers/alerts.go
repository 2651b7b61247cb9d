package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ferrybackend/internal/config"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/domain/models"
	"ferrybackend/internal/http/middleware"
	"ferrybackend/internal/repositories"
	"ferrybackend/internal/services"
)

func alertService(c *gin.Context) services.AlertService {
	return services.AlertService{
		Store:      repositories.AlertRepository{DB: config.DB},
		Counts:     countCache,
		WindowDays: appConfig.Alerts.WindowDays,
		RequestID:  middleware.GetRequestID(c),
	}
}

type createAlertPayload struct {
	Type          string `json:"type"`
	DeparturePort string `json:"departure_port"`
	ArrivalPort   string `json:"arrival_port"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Operator      string `json:"operator"`
	SailingTime   string `json:"sailing_time"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	Vehicles      int    `json:"vehicles"`
	BookingID     int64  `json:"booking_id"`
}

// CreateAlert registers an availability alert for the caller.
func CreateAlert(c *gin.Context) {
	var payload createAlertPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	alert := models.AvailabilityAlert{
		OwnerEmail:    middleware.AuthEmail(c),
		Type:          models.AlertType(payload.Type),
		DeparturePort: payload.DeparturePort,
		ArrivalPort:   payload.ArrivalPort,
		DepartureDate: payload.DepartureDate,
		ReturnDate:    payload.ReturnDate,
		Operator:      payload.Operator,
		SailingTime:   payload.SailingTime,
		Adults:        payload.Adults,
		Children:      payload.Children,
		Infants:       payload.Infants,
		Vehicles:      payload.Vehicles,
		BookingID:     payload.BookingID,
	}

	created, err := alertService(c).Create(c.Request.Context(), alert)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListAlerts returns the caller's alerts, optionally filtered by status.
func ListAlerts(c *gin.Context) {
	svc := alertService(c)
	alerts, err := svc.List(c.Request.Context(), middleware.AuthEmail(c), models.AlertStatus(c.Query("status")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// AlertCounts returns the caller's active/notified tally.
func AlertCounts(c *gin.Context) {
	counts, err := alertService(c).CountsFor(c.Request.Context(), middleware.AuthEmail(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// CancelAlert stops an alert at its owner's request.
func CancelAlert(c *gin.Context) {
	id, ok := alertID(c)
	if !ok {
		return
	}
	alert, err := alertService(c).Cancel(c.Request.Context(), id, middleware.AuthEmail(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// FulfillAlert marks a notified alert as acted upon.
func FulfillAlert(c *gin.Context) {
	id, ok := alertID(c)
	if !ok {
		return
	}
	alert, err := alertService(c).Fulfill(c.Request.Context(), id, middleware.AuthEmail(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// RemoveAlert deletes a terminal alert record.
func RemoveAlert(c *gin.Context) {
	id, ok := alertID(c)
	if !ok {
		return
	}
	if err := alertService(c).Remove(c.Request.Context(), id, middleware.AuthEmail(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SignalAlertAvailability applies an availability signal, moving an active
// alert to notified. Called by the inventory sweep, not by end users.
func SignalAlertAvailability(c *gin.Context) {
	id, ok := alertID(c)
	if !ok {
		return
	}
	alert, err := alertService(c).ApplyAvailabilitySignal(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func alertID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid alert id"})
		return 0, false
	}
	return id, true
}
