package contact

import (
	"fmt"
	"strings"
)

// Record is one contact: a name fixed at creation, an ordered list of
// phone numbers (duplicates permitted), and an optional birthday.
// Not safe for concurrent use; callers must serialize.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record for the given name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// Birthday returns the birthday and whether one has been set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates number and appends it. No uniqueness check: adding
// the same digits twice yields two entries.
func (r *Record) AddPhone(number string) error {
	p, err := NewPhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone validates number and removes the first value-equal entry.
// Removing a number that is not present is a no-op.
func (r *Record) RemovePhone(number string) error {
	p, err := NewPhone(number)
	if err != nil {
		return err
	}
	for i, q := range r.phones {
		if q == p {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return nil
}

// EditPhone removes oldNumber then adds newNumber, in that order. If
// newNumber fails validation the old entry has already been removed and
// stays removed. ReplacePhone is the atomic variant.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	if err := r.RemovePhone(oldNumber); err != nil {
		return err
	}
	return r.AddPhone(newNumber)
}

// ReplacePhone swaps oldNumber for newNumber in place. Both numbers are
// validated before the record changes, and oldNumber must be present.
func (r *Record) ReplacePhone(oldNumber, newNumber string) error {
	old, err := NewPhone(oldNumber)
	if err != nil {
		return err
	}
	repl, err := NewPhone(newNumber)
	if err != nil {
		return err
	}
	for i, q := range r.phones {
		if q == old {
			r.phones[i] = repl
			return nil
		}
	}
	return fmt.Errorf("contact: phone %s: %w", oldNumber, ErrNotFound)
}

// FindPhone returns the first phone whose digits equal number exactly.
// The input is matched as-is, not re-validated.
func (r *Record) FindPhone(number string) (Phone, error) {
	for _, p := range r.phones {
		if p.value == number {
			return p, nil
		}
	}
	return Phone{}, fmt.Errorf("contact: phone %s: %w", number, ErrNotFound)
}

// SetBirthday parses dateString and stores it, overwriting any prior value.
func (r *Record) SetBirthday(dateString string) error {
	b, err := NewBirthday(dateString)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// String renders the record as a single listing line.
func (r *Record) String() string {
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = p.String()
	}
	birthday := "No birthday"
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf("Name: %s, Phones: %s, Birthday: %s", r.name, strings.Join(numbers, ", "), birthday)
}
