package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// InvalidDateLabel is returned by FormatDateTime for timestamps that cannot
// be parsed, instead of an error or a raw "Invalid Date" artifact.
const InvalidDateLabel = "Fecha inválida"

const dateTimeLayout = "02/01/2006 15:04"

// timestampLayouts are tried in order when parsing stored date strings.
// RFC3339 covers both store generations; the shorter layouts absorb records
// written by hand or by early exports.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatCurrency renders an amount in colones: colón sign, dot thousands
// separators, no decimals. Amounts are whole-unit currency, so the fraction
// is rounded away.
func FormatCurrency(amount float64) string {
	neg := amount < 0
	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteRune('₡')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// FormatDateTime renders a stored timestamp string as DD/MM/YYYY HH:MM in
// local 24-hour time. Unparseable input yields InvalidDateLabel, never an
// error.
func FormatDateTime(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return InvalidDateLabel
	}
	return t.Local().Format(dateTimeLayout)
}

// FormatTimestamp renders an already-parsed timestamp the same way
// FormatDateTime renders strings.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(dateTimeLayout)
}

// ParseTimestamp parses a stored date string, trying the known layouts in
// order. The second result reports whether any layout matched.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
