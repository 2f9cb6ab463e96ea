package dateutil

import (
	"strings"
	"time"
)

// ISODate is the storage layout used for date comparisons.
const ISODate = "2006-01-02"

var brLayouts = []string{"02/01/2006", "2/1/2006"}

// ParseBR parses a DD/MM/YYYY wire date.
func ParseBR(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range brLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BRToISO converts a DD/MM/YYYY date to YYYY-MM-DD; ok is false when the
// input is not a valid date.
func BRToISO(s string) (string, bool) {
	t, ok := ParseBR(s)
	if !ok {
		return "", false
	}
	return t.Format(ISODate), true
}

// Parse accepts either the wire format or an ISO date, as sent by forms.
func Parse(s string) (time.Time, bool) {
	if t, ok := ParseBR(s); ok {
		return t, true
	}
	t, err := time.Parse(ISODate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders an optional date, empty when unset.
func FormatISO(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(ISODate)
}
