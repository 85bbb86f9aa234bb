package notifications

import "strings"

// hrKey is the stored userId addressing HR collectively.
const hrKey = "hr"

// Recipient addresses either HR as a group or a single employee.
type Recipient struct {
	hr         bool
	employeeID string
}

func HR() Recipient {
	return Recipient{hr: true}
}

func Employee(id string) Recipient {
	return Recipient{employeeID: strings.TrimSpace(id)}
}

// ParseRecipient accepts "hr" or a non-empty employee id.
func ParseRecipient(raw string) (Recipient, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Recipient{}, ErrInvalidRecipient
	case strings.EqualFold(raw, hrKey):
		return HR(), nil
	default:
		return Employee(raw), nil
	}
}

func (r Recipient) IsHR() bool {
	return r.hr
}

func (r Recipient) EmployeeID() string {
	return r.employeeID
}

func (r Recipient) Valid() bool {
	return r.hr || r.employeeID != ""
}

// Key is the value stored in the userId field.
func (r Recipient) Key() string {
	if r.hr {
		return hrKey
	}
	return r.employeeID
}

func (r Recipient) String() string {
	return r.Key()
}
