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

type selectionPayload struct {
	Leg            string `json:"leg"`
	ID             string `json:"id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type bookingPayload struct {
	OutboundSailingID  int64                  `json:"outbound_sailing_id"`
	ReturnSailingID    int64                  `json:"return_sailing_id"`
	Counts             models.PassengerCounts `json:"counts"`
	Passengers         []models.Passenger     `json:"passengers"`
	Vehicles           []models.Vehicle       `json:"vehicles"`
	Contact            models.Contact         `json:"contact"`
	Cabins             []selectionPayload     `json:"cabins"`
	Meals              []selectionPayload     `json:"meals"`
	Protection         bool                   `json:"protection"`
	PromoCode          string                 `json:"promo_code"`
	PromoDiscountCents int64                  `json:"promo_discount_cents"`
}

func bookingService(c *gin.Context) services.BookingService {
	alerts := alertService(c)
	return services.BookingService{
		Sailings:  repositories.SailingRepository{DB: config.DB},
		Bookings:  repositories.BookingRepository{DB: config.DB},
		Alerts:    &alerts,
		Fares:     appConfig.Fares,
		RequestID: middleware.GetRequestID(c),
	}
}

func parseLeg(raw string) models.Leg {
	if raw == string(models.LegReturn) {
		return models.LegReturn
	}
	return models.LegOutbound
}

func draftFromPayload(c *gin.Context, svc services.BookingService, p bookingPayload) (*models.BookingDraft, error) {
	d, err := svc.NewDraft(c.Request.Context(), p.OutboundSailingID, p.ReturnSailingID)
	if err != nil {
		return nil, err
	}
	d.SetCounts(p.Counts)
	d.Passengers = p.Passengers
	d.SetVehicles(p.Vehicles)
	d.Contact = p.Contact
	d.SetProtection(p.Protection)
	if p.PromoCode != "" {
		d.ApplyPromo(p.PromoCode, p.PromoDiscountCents)
	}
	for _, s := range p.Cabins {
		d.SetCabin(parseLeg(s.Leg), s.ID, s.UnitPriceCents, s.Quantity)
	}
	for _, s := range p.Meals {
		d.SetMeal(parseLeg(s.Leg), s.ID, s.UnitPriceCents, s.Quantity)
	}
	return d, nil
}

// QuoteBooking prices a draft without storing anything.
func QuoteBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.OutboundSailingID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "outbound_sailing_id", Msg: "outbound sailing is required"})
		return
	}

	svc := bookingService(c)
	d, err := draftFromPayload(c, svc, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc.Quote(d))
}

// SubmitBooking assembles, validates and stores a booking.
func SubmitBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.OutboundSailingID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "outbound_sailing_id", Msg: "outbound sailing is required"})
		return
	}

	svc := bookingService(c)
	d, err := draftFromPayload(c, svc, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := svc.Submit(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking returns a stored booking with its selections.
func GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid booking id"})
		return
	}

	repo := repositories.BookingRepository{DB: config.DB}
	b, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	selections, err := repo.ListSelections(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "selections": selections})
}

type addCabinPayload struct {
	Leg            string `json:"leg"`
	CabinID        string `json:"cabin_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	AlertID        int64  `json:"alert_id"`
}

// AddCabinToBooking adds cabin capacity to an existing booking, typically in
// response to a notified cabin alert.
func AddCabinToBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid booking id"})
		return
	}
	var payload addCabinPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	svc := bookingService(c)
	breakdown, err := svc.AddCabin(c.Request.Context(), id, parseLeg(payload.Leg),
		payload.CabinID, payload.UnitPriceCents, payload.Quantity, payload.AlertID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "pricing": breakdown})
}

// BookingConfirmationPDF streams the confirmation document.
func BookingConfirmationPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid booking id"})
		return
	}

	svc := services.DocsService{
		Bookings:  repositories.BookingRepository{DB: config.DB},
		Sailings:  repositories.SailingRepository{DB: config.DB},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateConfirmation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
