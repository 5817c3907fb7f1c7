package validation

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/templui/screentime/internal/model"
)

// Lengths count characters, not bytes.
const (
	MaxAppNameLength = 100
	MaxNotesLength   = 1000
	MinutesPerDay    = 24 * 60
)

// ValidateAppName validates the app an entry or goal refers to
func ValidateAppName(app string) error {
	trimmed := strings.TrimSpace(app)

	if trimmed == "" {
		return errors.New("app is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxAppNameLength {
		return errors.New("app name is too long (max 100 characters)")
	}

	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(date string) error {
	if date == "" {
		return errors.New("date is required")
	}
	_, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return errors.New("date must be formatted as YYYY-MM-DD")
	}
	return nil
}

// ValidateEntry checks every field of a time entry. The ID is not checked.
func ValidateEntry(e model.TimeEntry) FieldErrors {
	fe := FieldErrors{}

	if err := ValidateDate(e.Date); err != nil {
		fe["date"] = err.Error()
	}
	if !model.IsDevice(e.Device) {
		fe["device"] = "unknown device"
	}
	if err := ValidateAppName(e.App); err != nil {
		fe["app"] = err.Error()
	}
	if !model.IsCategory(e.Category) {
		fe["category"] = "unknown category"
	}
	if e.Duration < 0 {
		fe["duration"] = "duration cannot be negative"
	} else if e.Duration > MinutesPerDay {
		fe["duration"] = "duration cannot exceed 1440 minutes"
	}
	if utf8.RuneCountInString(e.Notes) > MaxNotesLength {
		fe["notes"] = "notes are too long (max 1000 characters)"
	}

	return fe
}

// NormalizeEntry trims free-text fields in place.
func NormalizeEntry(e *model.TimeEntry) {
	e.App = strings.TrimSpace(e.App)
	e.Notes = strings.TrimSpace(e.Notes)
}
