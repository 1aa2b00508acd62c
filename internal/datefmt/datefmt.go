// Package datefmt renders backend timestamps for display.
package datefmt

import "time"

// InvalidDate is returned for input that cannot be parsed.
const InvalidDate = "Invalid Date"

// displayLayout is the en-GB numeric date and time form, e.g. "02/01/2024, 15:04".
const displayLayout = "02/01/2006, 15:04"

// zonedLayouts carry their own offset; localLayouts are read in the
// formatter's location. Date-only input is read as UTC midnight.
var (
	zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"}
	localLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04"}
	dateLayout   = "2006-01-02"
)

// Formatter renders timestamps in a fixed location.
type Formatter struct {
	loc *time.Location
}

// New returns a Formatter for loc; nil means time.Local.
func New(loc *time.Location) Formatter {
	return Formatter{loc: loc}
}

// Format renders s as "dd/mm/yyyy, HH:MM". Empty input yields "".
func (f Formatter) Format(s string) string {
	if s == "" {
		return ""
	}
	t, ok := f.parse(s)
	if !ok {
		return InvalidDate
	}
	return t.In(f.location()).Format(displayLayout)
}

func (f Formatter) parse(s string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.location()); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (f Formatter) location() *time.Location {
	if f.loc == nil {
		return time.Local
	}
	return f.loc
}

// Format renders s in the local time zone.
func Format(s string) string {
	return New(nil).Format(s)
}
