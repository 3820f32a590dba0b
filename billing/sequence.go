package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// Series identifies a document numbering sequence.
type Series string

const (
	SeriesInvoice    Series = "INV"
	SeriesCreditNote Series = "CN"
)

// FormatNumber renders the nth document of a series, e.g. INV-001.
func FormatNumber(series Series, n int64) string {
	return fmt.Sprintf("%s-%03d", series, n)
}

// ParseSequence returns the numeric suffix after the last '-' of a document
// number. It reports false for an empty or unparsable number.
func ParseSequence(number string) (int64, bool) {
	i := strings.LastIndex(number, "-")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(number[i+1:]), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextNumber derives the number following last in the series. With no
// usable last number the series starts at 001.
//
// This is only a derivation. Allocation goes through Tx.NextSequence, which
// is atomic; stores use NextNumber's rule to seed a fresh counter from
// documents issued before the counter existed.
func NextNumber(series Series, last string) string {
	n, _ := ParseSequence(last)
	return FormatNumber(series, n+1)
}
