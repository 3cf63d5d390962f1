// Package contact holds the validated field types and the contact record
// aggregate used by the address book.
package contact

import (
	"fmt"
	"time"
)

// DateLayout is the display and input format for birthdays.
const DateLayout = "02.01.2006"

// phoneDigits is the required length of a phone number.
const phoneDigits = 10

// Name identifies a contact record and keys it in the address book.
// Immutable once constructed.
type Name struct {
	value string
}

// NewName validates that s is non-empty.
func NewName(s string) (Name, error) {
	if len(s) == 0 {
		return Name{}, &ValidationError{Field: "name", Value: s, Reason: "cannot be empty"}
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Phone is a ten-digit number. It is a comparable value type, so two
// Phones are equal exactly when their digit strings match.
type Phone struct {
	value string
}

// NewPhone validates that s is exactly ten ASCII digits.
func NewPhone(s string) (Phone, error) {
	if len(s) != phoneDigits {
		return Phone{}, &ValidationError{Field: "phone", Value: s, Reason: "must be exactly 10 digits"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Phone{}, &ValidationError{Field: "phone", Value: s, Reason: "must contain only digits"}
		}
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date parsed from a DD.MM.YYYY string.
// Immutable once constructed. Any real calendar date is accepted; there
// is no birth-year range check.
type Birthday struct {
	date time.Time
}

// NewBirthday parses s strictly: two-digit day, two-digit month,
// four-digit year, dot-separated, forming a valid calendar date.
func NewBirthday(s string) (Birthday, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: s, Reason: "must be a valid DD.MM.YYYY date"}
	}
	return Birthday{date: d}, nil
}

// String formats the birthday back to DD.MM.YYYY, round-tripping the
// input it was constructed from.
func (b Birthday) String() string { return b.date.Format(DateLayout) }

// Date returns the underlying calendar date.
func (b Birthday) Date() time.Time { return b.date }

// Occurrence places the birthday's month and day into the given year.
// Feb 29 has no occurrence in a non-leap year; that case returns a
// ValidationError instead of a normalized date.
func (b Birthday) Occurrence(year int) (time.Time, error) {
	day, month := b.date.Day(), b.date.Month()
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, &ValidationError{
			Field:  "birthday",
			Value:  fmt.Sprintf("%02d.%02d.%04d", day, month, year),
			Reason: "date does not exist in that year",
		}
	}
	return t, nil
}
