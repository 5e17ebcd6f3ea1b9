package domain

import (
	"fmt"
	"strings"
	"time"
)

type CabinClass string

const (
	CabinEconomy        CabinClass = "Economy"
	CabinPremiumEconomy CabinClass = "Premium Economy"
	CabinBusiness       CabinClass = "Business"
	CabinFirst          CabinClass = "First"
)

func (c CabinClass) Valid() bool {
	switch c {
	case "", CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// SearchCriteria is the user-entered search form, scoped to one sales order.
// Dates are YYYY-MM-DD strings; ChildAges is the raw comma-separated field.
type SearchCriteria struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	RoundTrip     bool       `json:"round_trip"`
	ReturnDate    string     `json:"return_date,omitempty"`
	Adults        int        `json:"adults"`
	ChildCount    int        `json:"children"`
	ChildAges     string     `json:"child_ages,omitempty"`
	CabinClass    CabinClass `json:"cabin_class,omitempty"`
}

// ValidationError pins a failure to the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate checks the criteria before any request is built or sent.
func (c SearchCriteria) Validate() error {
	if len(strings.TrimSpace(c.Origin)) != 3 {
		return invalid("origin", "airport code must be 3 characters (IATA format)")
	}
	if len(strings.TrimSpace(c.Destination)) != 3 {
		return invalid("destination", "airport code must be 3 characters (IATA format)")
	}
	dep, err := time.Parse(dateLayout, c.DepartureDate)
	if err != nil {
		return invalid("departure_date", "must be a YYYY-MM-DD date")
	}
	if c.RoundTrip {
		if c.ReturnDate == "" {
			return invalid("return_date", "required for round trip searches")
		}
		ret, err := time.Parse(dateLayout, c.ReturnDate)
		if err != nil {
			return invalid("return_date", "must be a YYYY-MM-DD date")
		}
		if !ret.After(dep) {
			return invalid("return_date", "must be after departure date")
		}
	}
	if c.Adults < 0 {
		return invalid("adults", "must not be negative")
	}
	if c.ChildCount < 0 {
		return invalid("children", "must not be negative")
	}
	if c.ChildCount > 0 {
		ages := SplitAges(c.ChildAges)
		if len(ages) == 0 {
			return invalid("child_ages", "required when children are included")
		}
		if len(ages) != c.ChildCount {
			return invalid("child_ages", fmt.Sprintf(
				"number of child ages (%d) must match number of children (%d)", len(ages), c.ChildCount))
		}
	}
	if !c.CabinClass.Valid() {
		return invalid("cabin_class", "unknown cabin class")
	}
	return nil
}

// SplitAges returns the non-empty trimmed entries of a comma-separated age list.
// Entries are not required to be numeric here; unparseable ages are skipped
// later with a warning when the request is built.
func SplitAges(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
