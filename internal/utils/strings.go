package utils

import (
	"strings"
)

// NormalizeSpace trims and collapses repeated whitespace into single spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePort uppercases and trims a port code (e.g. " doV " -> "DOV").
func NormalizePort(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
