package catalog

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateProduct validates a product before create or update. Categories
// outside the allow-list are rejected here, before anything reaches the
// store, so the admin surface cannot grow the orderable set by accident.
func ValidateProduct(p *Product) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(p.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "nombre",
			Message: "nombre is required",
		})
	}

	if p.Price < 0 {
		errors = append(errors, ValidationError{
			Field:   "precio",
			Message: "precio cannot be negative",
		})
	}

	if strings.TrimSpace(p.Category) == "" {
		errors = append(errors, ValidationError{
			Field:   "categoria",
			Message: "categoria is required",
		})
	} else if !CategoryAllowed(p.Category) {
		errors = append(errors, ValidationError{
			Field:   "categoria",
			Message: fmt.Sprintf("categoria must be one of: %s", strings.Join(AllowedCategories, ", ")),
		})
	}

	return errors
}
