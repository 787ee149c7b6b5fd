package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Date layout accepted by the trigger endpoints.
const DateLayout = "2006-01-02"

// ParseLedgerDate parses a YYYY-MM-DD string or the sentinels "today" and
// "yesterday" into midnight UTC.
func ParseLedgerDate(s string) (time.Time, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch s {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD, \"today\" or \"yesterday\"", s)
	}
	return t, nil
}

// LedgerDateValidator is the "ledgerdate" binding rule backing ParseLedgerDate.
func LedgerDateValidator(fl validator.FieldLevel) bool {
	_, err := ParseLedgerDate(fl.Field().String())
	return err == nil
}
