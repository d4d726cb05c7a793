package cart

import (
	"fmt"
	"strconv"
)

const (
	MinTableNumber = 1
	MaxTableNumber = 500
)

const (
	// SourceLink marks a table resolved from a scanned link parameter.
	SourceLink = "link"
	// SourceManual marks a table typed in by the guest.
	SourceManual = "manual"
)

type TableSelection struct {
	Number int    `json:"numero_mesa"`
	Source string `json:"source"`
}

// ResolveTableFromLink parses the mesa parameter carried by a table link.
// A missing, malformed, or out-of-range value leaves the table unresolved so
// the caller can fall back to manual entry; it never picks a default table.
func ResolveTableFromLink(param string) (TableSelection, error) {
	if param == "" {
		return TableSelection{}, fmt.Errorf("missing table parameter")
	}

	n, err := strconv.Atoi(param)
	if err != nil {
		return TableSelection{}, fmt.Errorf("invalid table parameter %q", param)
	}

	if n < MinTableNumber || n > MaxTableNumber {
		return TableSelection{}, fmt.Errorf("table %d out of range %d-%d", n, MinTableNumber, MaxTableNumber)
	}

	return TableSelection{Number: n, Source: SourceLink}, nil
}

// ResolveTableManual validates a table number typed in by the guest.
func ResolveTableManual(n int) (TableSelection, error) {
	if n < MinTableNumber || n > MaxTableNumber {
		return TableSelection{}, fmt.Errorf("table %d out of range %d-%d", n, MinTableNumber, MaxTableNumber)
	}
	return TableSelection{Number: n, Source: SourceManual}, nil
}
