package utils

import "testing"

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ana   Silva ", "Ana Silva"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.in); got != tt.want {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePort(t *testing.T) {
	if got := NormalizePort(" doV "); got != "DOV" {
		t.Errorf("NormalizePort = %q, want DOV", got)
	}
}
