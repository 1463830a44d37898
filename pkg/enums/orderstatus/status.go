package orderstatus

import "strings"

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

type Enum struct {
	Open      Status
	Paid      Status
	Cancelled Status
}

// Cancelled is terminal but nothing transitions into it yet.
var Statuses = Enum{
	Open:      Status{Name: "open"},
	Paid:      Status{Name: "paid"},
	Cancelled: Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Open,
	Statuses.Paid,
	Statuses.Cancelled,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
