package validate

import (
	"fmt"
	"regexp"
	"time"
)

var colorRx = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NonEmpty rejects missing required fields.
func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Color validates a six-digit hex color with leading '#'.
func Color(v string) error {
	if v == "" {
		return fmt.Errorf("color is required")
	}
	if !colorRx.MatchString(v) {
		return fmt.Errorf("color must be a hex value like #5b7b7a")
	}
	return nil
}

// Date validates a calendar date in YYYY-MM-DD form.
func Date(v string) error {
	if v == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}
