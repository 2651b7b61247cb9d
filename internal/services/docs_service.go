package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"ferrybackend/internal/utils"
)

// DocsService renders the booking confirmation PDF.
type DocsService struct {
	Bookings  BookingStore
	Sailings  SailingSource
	RequestID string
	Loader    func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID     int64
	Reference     string
	ContactName   string
	ContactEmail  string
	RouteFrom     string
	RouteTo       string
	Operator      string
	Vessel        string
	DepartureAt   string
	ReturnAt      string
	Adults        int
	Children      int
	Infants       int
	Vehicles      int
	Protection    bool
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// GenerateConfirmation builds the confirmation PDF for a stored booking.
func (s DocsService) GenerateConfirmation(ctx context.Context, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadBookingDocData(ctx context.Context, bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out bookingDocData
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return out, err
	}

	out.BookingID = b.ID
	out.Reference = b.Reference
	out.ContactName = strings.TrimSpace(b.Contact.FirstName + " " + b.Contact.LastName)
	out.ContactEmail = b.Contact.Email
	out.Adults = b.Counts.Adults
	out.Children = b.Counts.Children
	out.Infants = b.Counts.Infants
	out.Protection = b.Protection
	out.SubtotalCents = b.Pricing.SubtotalCents
	out.TaxCents = b.Pricing.TaxCents
	out.TotalCents = b.Pricing.TotalCents

	if sailing, err := s.Sailings.GetByID(ctx, b.OutboundSailingID); err == nil {
		out.RouteFrom = sailing.DeparturePort
		out.RouteTo = sailing.ArrivalPort
		out.Operator = sailing.Operator
		out.Vessel = sailing.Vessel
		out.DepartureAt = utils.FormatDateTime(sailing.Departure)
	}
	if b.ReturnSailingID > 0 {
		if sailing, err := s.Sailings.GetByID(ctx, b.ReturnSailingID); err == nil {
			out.ReturnAt = utils.FormatDateTime(sailing.Departure)
		}
	}

	if vehicles, err := s.Bookings.ListVehicles(ctx, bookingID); err == nil {
		out.Vehicles = len(vehicles)
	}
	return out, nil
}

func buildConfirmationPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	protection := "no"
	if d.Protection {
		protection = "yes"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference      : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Booked by      : %s", safe(d.ContactName, "-")),
		fmt.Sprintf("Email          : %s", safe(d.ContactEmail, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(d.RouteFrom, "-"), safe(d.RouteTo, "-")),
		fmt.Sprintf("Operator       : %s (%s)", safe(d.Operator, "-"), safe(d.Vessel, "-")),
		fmt.Sprintf("Departure      : %s", safe(d.DepartureAt, "-")),
		fmt.Sprintf("Return         : %s", safe(d.ReturnAt, "one-way")),
		fmt.Sprintf("Passengers     : %d adult(s), %d child(ren), %d infant(s)", d.Adults, d.Children, d.Infants),
		fmt.Sprintf("Vehicles       : %d", d.Vehicles),
		fmt.Sprintf("Protection     : %s", protection),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Subtotal: "+utils.FormatEuro(d.SubtotalCents))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tax:      "+utils.FormatEuro(d.TaxCents))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Total:    "+utils.FormatEuro(d.TotalCents))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please have this confirmation and valid travel documents ready at check-in. Vehicle drivers should arrive at least 60 minutes before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("CONFIRMATION_%s_%s.pdf", safeFilenamePart(d.Reference), utils.FormatDate(time.Now()))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "booking"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
