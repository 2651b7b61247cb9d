package utils

import "testing"

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "€0,00"},
		{5, "€0,05"},
		{1_250, "€12,50"},
		{123_456, "€1.234,56"},
		{100_000_000, "€1.000.000,00"},
		{-1_250, "-€12,50"},
	}
	for _, tt := range tests {
		if got := FormatEuro(tt.cents); got != tt.want {
			t.Errorf("FormatEuro(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
