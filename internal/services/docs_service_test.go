package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"ferrybackend/internal/domain"
)

func TestGenerateConfirmation(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (bookingDocData, error) {
			return bookingDocData{
				BookingID:     id,
				Reference:     "FB-A1B2C3",
				ContactName:   "Ana Silva",
				ContactEmail:  "ana@example.com",
				RouteFrom:     "PIRAEUS",
				RouteTo:       "HERAKLION",
				Operator:      "Aegean Lines",
				Vessel:        "MV Thalassa",
				DepartureAt:   "2026-04-10 08:00",
				Adults:        2,
				Children:      1,
				Protection:    true,
				SubtotalCents: 32_500,
				TaxCents:      3_250,
				TotalCents:    35_750,
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateConfirmation(context.Background(), 7)
	if err != nil {
		t.Fatalf("GenerateConfirmation() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if len(pdf) < 500 {
		t.Errorf("pdf size = %d, suspiciously small", len(pdf))
	}
	if !strings.HasPrefix(filename, "CONFIRMATION_FB-A1B2C3_") || !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("filename = %q", filename)
	}
}

func TestGenerateConfirmationLoaderFailure(t *testing.T) {
	svc := DocsService{
		Loader: func(int64) (bookingDocData, error) {
			return bookingDocData{}, domain.NotFoundError{Resource: "booking"}
		},
	}

	if _, _, err := svc.GenerateConfirmation(context.Background(), 404); !domain.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestConfirmationFilenameSanitized(t *testing.T) {
	svc := DocsService{
		Loader: func(int64) (bookingDocData, error) {
			return bookingDocData{Reference: "FB 1/2:3"}, nil
		},
	}

	_, filename, err := svc.GenerateConfirmation(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateConfirmation() error = %v", err)
	}
	if strings.ContainsAny(filename, " /:") {
		t.Errorf("filename %q still contains unsafe characters", filename)
	}
}
