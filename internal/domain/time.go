package domain

import "time"

// TimeLayout is the wire format for stored timestamps: UTC with fixed
// millisecond precision, so values of equal instant compare equal as strings.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in the stored timestamp format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp. RFC 3339 variants with other
// fractional precision are accepted for records written by older clients.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
