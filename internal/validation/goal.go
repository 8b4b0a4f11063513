package validation

import (
	"errors"
	"strings"
)

// ValidateTitle validates a goal or record title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if len(trimmed) > 200 {
		return errors.New("title is too long (max 200 characters)")
	}

	return nil
}

// ValidatePriority validates a goal priority (1 high, 2 medium, 3 low)
func ValidatePriority(priority int) error {
	if priority < 1 || priority > 3 {
		return errors.New("priority must be 1 (high), 2 (medium) or 3 (low)")
	}
	return nil
}
