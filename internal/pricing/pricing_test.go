package pricing

import (
	"testing"

	"ferrybackend/internal/domain/models"
)

func testConfig() Config {
	return Config{
		ChildFactor:           0.5,
		InfantFactor:          0,
		TaxRate:               0.10,
		VehicleSurchargeCents: 4_500,
		ProtectionCents:       1_500,
	}
}

func oneWayDraft(base int64) *models.BookingDraft {
	return models.NewBookingDraft(&models.Sailing{ID: 1, BasePriceCents: base}, nil)
}

func roundTripDraft(outBase, retBase int64) *models.BookingDraft {
	return models.NewBookingDraft(
		&models.Sailing{ID: 1, BasePriceCents: outBase},
		&models.Sailing{ID: 2, BasePriceCents: retBase},
	)
}

func TestPassengerFare(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name   string
		base   int64
		counts models.PassengerCounts
		want   int64
	}{
		{"adults only", 10_000, models.PassengerCounts{Adults: 2}, 20_000},
		{"children at half fare", 10_000, models.PassengerCounts{Adults: 2, Children: 1}, 25_000},
		{"infants free", 10_000, models.PassengerCounts{Adults: 1, Infants: 1}, 10_000},
		{"zero base", 0, models.PassengerCounts{Adults: 3, Children: 2}, 0},
		{"zero counts", 10_000, models.PassengerCounts{}, 0},
		{"negative counts treated as zero", 10_000, models.PassengerCounts{Adults: -1, Children: -2}, 0},
		{"negative base treated as zero", -500, models.PassengerCounts{Adults: 2}, 0},
		{"odd base rounds child fare", 9_999, models.PassengerCounts{Adults: 1, Children: 1}, 9_999 + 5_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassengerFare(tt.base, tt.counts, cfg); got != tt.want {
				t.Errorf("PassengerFare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeBreakdownOneWay(t *testing.T) {
	// Base 100.00, 2 adults + 1 child: fare 250.00, tax 25.00, total 275.00.
	d := oneWayDraft(10_000)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 1})

	b := ComputeBreakdown(d, testConfig())

	if b.OutboundFareCents != 25_000 {
		t.Errorf("outbound fare = %d, want 25000", b.OutboundFareCents)
	}
	if b.ReturnFareCents != 0 {
		t.Errorf("return fare = %d, want 0", b.ReturnFareCents)
	}
	if b.SubtotalCents != 25_000 {
		t.Errorf("subtotal = %d, want 25000", b.SubtotalCents)
	}
	if b.TaxCents != 2_500 {
		t.Errorf("tax = %d, want 2500", b.TaxCents)
	}
	if b.TotalCents != 27_500 {
		t.Errorf("total = %d, want 27500", b.TotalCents)
	}
}

func TestComputeBreakdownRoundTrip(t *testing.T) {
	// Outbound 100.00, return 80.00, 2 adults + 1 child: 250 + 200 = 450.00
	// subtotal, tax 45.00, total 495.00.
	d := roundTripDraft(10_000, 8_000)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 1})

	b := ComputeBreakdown(d, testConfig())

	if b.ReturnFareCents != 20_000 {
		t.Errorf("return fare = %d, want 20000", b.ReturnFareCents)
	}
	if b.SubtotalCents != 45_000 {
		t.Errorf("subtotal = %d, want 45000", b.SubtotalCents)
	}
	if b.TaxCents != 4_500 {
		t.Errorf("tax = %d, want 4500", b.TaxCents)
	}
	if b.TotalCents != 49_500 {
		t.Errorf("total = %d, want 49500", b.TotalCents)
	}
}

func TestComputeBreakdownCabinAndProtection(t *testing.T) {
	// One-way 250.00 fare plus one 60.00 cabin and 15.00 protection:
	// subtotal 325.00, tax 32.50, total 357.50.
	d := oneWayDraft(10_000)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 1})
	d.SetCabin(models.LegOutbound, "std-inside", 6_000, 1)
	d.SetProtection(true)

	b := ComputeBreakdown(d, testConfig())

	if b.CabinCents != 6_000 {
		t.Errorf("cabin = %d, want 6000", b.CabinCents)
	}
	if b.ProtectionCents != 1_500 {
		t.Errorf("protection = %d, want 1500", b.ProtectionCents)
	}
	if b.SubtotalCents != 32_500 {
		t.Errorf("subtotal = %d, want 32500", b.SubtotalCents)
	}
	if b.TaxCents != 3_250 {
		t.Errorf("tax = %d, want 3250", b.TaxCents)
	}
	if b.TotalCents != 35_750 {
		t.Errorf("total = %d, want 35750", b.TotalCents)
	}
}

func TestComputeBreakdownDiscountFloorsAtZero(t *testing.T) {
	// A 500.00 discount against a 250.00 subtotal floors at zero; tax and
	// total follow.
	d := oneWayDraft(10_000)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 1})
	d.ApplyPromo("BIGSAVE", 50_000)

	b := ComputeBreakdown(d, testConfig())

	if b.DiscountCents != 50_000 {
		t.Errorf("discount = %d, want 50000", b.DiscountCents)
	}
	if b.SubtotalCents != 0 {
		t.Errorf("subtotal = %d, want 0", b.SubtotalCents)
	}
	if b.TaxCents != 0 {
		t.Errorf("tax = %d, want 0", b.TaxCents)
	}
	if b.TotalCents != 0 {
		t.Errorf("total = %d, want 0", b.TotalCents)
	}
}

func TestComputeBreakdownVehicleSurchargeDoublesOnRoundTrip(t *testing.T) {
	oneWay := oneWayDraft(10_000)
	oneWay.SetCounts(models.PassengerCounts{Adults: 1})
	oneWay.AddVehicle(models.Vehicle{Type: "car", Registration: "AB-123-CD"})

	if got := ComputeBreakdown(oneWay, testConfig()).VehicleCents; got != 4_500 {
		t.Errorf("one-way vehicle = %d, want 4500", got)
	}

	roundTrip := roundTripDraft(10_000, 10_000)
	roundTrip.SetCounts(models.PassengerCounts{Adults: 1})
	roundTrip.AddVehicle(models.Vehicle{Type: "car", Registration: "AB-123-CD"})

	if got := ComputeBreakdown(roundTrip, testConfig()).VehicleCents; got != 9_000 {
		t.Errorf("round-trip vehicle = %d, want 9000", got)
	}
}

func TestComputeBreakdownTaxOnDiscountedSubtotal(t *testing.T) {
	d := oneWayDraft(10_000)
	d.SetCounts(models.PassengerCounts{Adults: 2})
	d.ApplyPromo("TENOFF", 1_000)

	b := ComputeBreakdown(d, testConfig())

	if b.SubtotalCents != 19_000 {
		t.Errorf("subtotal = %d, want 19000", b.SubtotalCents)
	}
	if b.TaxCents != 1_900 {
		t.Errorf("tax = %d, want 1900 (tax applies after discount)", b.TaxCents)
	}
}

func TestComputeBreakdownDeterministic(t *testing.T) {
	d := roundTripDraft(12_345, 8_760)
	d.SetCounts(models.PassengerCounts{Adults: 2, Children: 2, Infants: 1})
	d.AddVehicle(models.Vehicle{Type: "car", Registration: "XX-1"})
	d.SetCabin(models.LegOutbound, "7", 6_000, 2)
	d.SetCabin(models.LegReturn, "suite", 12_000, 1)
	d.SetMeal(models.LegOutbound, "breakfast", 950, 4)
	d.SetProtection(true)
	d.ApplyPromo("SAVE", 2_000)

	first := ComputeBreakdown(d, testConfig())
	for i := 0; i < 10; i++ {
		if got := ComputeBreakdown(d, testConfig()); got != first {
			t.Fatalf("run %d produced %+v, want %+v", i, got, first)
		}
	}
}

func TestComputeBreakdownNilDraft(t *testing.T) {
	if b := ComputeBreakdown(nil, testConfig()); b.TotalCents != 0 {
		t.Errorf("nil draft total = %d, want 0", b.TotalCents)
	}
}
