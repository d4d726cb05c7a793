package orderstatus

// Status is a fulfillment state for a submitted order. Name holds the wire
// literal shown verbatim to staff, in the restaurant's own language.
type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) IsTerminal() bool {
	return s.Name == Statuses.Delivered.Name
}

type Enum struct {
	Pending       Status
	InPreparation Status
	Ready         Status
	Delivered     Status
}

var Statuses = Enum{
	Pending:       Status{Name: "Pendiente"},
	InPreparation: Status{Name: "En Preparación"},
	Ready:         Status{Name: "Preparado"},
	Delivered:     Status{Name: "Entregado"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.InPreparation,
	Statuses.Ready,
	Statuses.Delivered,
}

// ByName returns the status for a given wire literal, or nil if not found.
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// Next returns the designated successor in the linear pipeline. The terminal
// status has no successor.
func Next(s Status) (Status, bool) {
	for i, cur := range All {
		if cur.Name == s.Name && i+1 < len(All) {
			return All[i+1], true
		}
	}
	return Status{}, false
}

// CanTransition reports whether moving from one status to another is the
// single forward step of the linear pipeline. The underlying store accepts
// any target status; callers opt into this check via configuration.
func CanTransition(from, to Status) bool {
	fromIdx, toIdx := -1, -1
	for i, s := range All {
		if s.Name == from.Name {
			fromIdx = i
		}
		if s.Name == to.Name {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx == fromIdx+1
}
