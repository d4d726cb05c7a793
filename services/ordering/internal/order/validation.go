package order

import "fmt"

const (
	MinTableNumber = 1
	MaxTableNumber = 500

	MaxNoteLength = 200
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TableNumberValid reports whether n is a servable table.
func TableNumberValid(n int) bool {
	return n >= MinTableNumber && n <= MaxTableNumber
}

func ValidateOrder(o *Order) []ValidationError {
	var errors []ValidationError

	if !TableNumberValid(o.TableNumber) {
		errors = append(errors, ValidationError{
			Field:   "numero_mesa",
			Message: fmt.Sprintf("Table number must be between %d and %d", MinTableNumber, MaxTableNumber),
		})
	}

	if len(o.Items) == 0 {
		errors = append(errors, ValidationError{
			Field:   "productos",
			Message: "Order must contain at least one item",
		})
	}

	for i, item := range o.Items {
		if item.Name == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("productos[%d].name", i),
				Message: "Item name is required",
			})
		}
		if item.Quantity <= 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("productos[%d].quantity", i),
				Message: "Item quantity must be positive",
			})
		}
		if item.UnitPrice < 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("productos[%d].price", i),
				Message: "Item price cannot be negative",
			})
		}
	}

	if len(o.Note) > MaxNoteLength {
		errors = append(errors, ValidationError{
			Field:   "nota",
			Message: fmt.Sprintf("Note cannot exceed %d characters", MaxNoteLength),
		})
	}

	return errors
}
