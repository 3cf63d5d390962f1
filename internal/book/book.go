// Package book implements the address book: an insertion-ordered
// collection of contact records keyed by name, with an upcoming-birthday
// window query.
package book

import (
	"fmt"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// DefaultWindowDays is the lookahead window for UpcomingBirthdays when
// the caller does not set one.
const DefaultWindowDays = 7

// Book maps a contact's name to its record. Keys are unique; adding a
// record under an existing name replaces it (last write wins) while the
// key keeps its original position in iteration order. Not safe for
// concurrent use; callers must serialize.
type Book struct {
	order   []string
	records map[string]*contact.Record
}

// New returns an empty address book.
func New() *Book {
	return &Book{records: make(map[string]*contact.Record)}
}

// Add inserts rec keyed by its name string, replacing any existing
// record under that name.
func (b *Book) Add(rec *contact.Record) {
	key := rec.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = rec
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*contact.Record, error) {
	rec, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("book: record %q: %w", name, contact.ErrNotFound)
	}
	return rec, nil
}

// Delete removes the record stored under name and reports whether it was
// present. A miss is an indicator, not an error.
func (b *Book) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.order) }

// Records returns the records in insertion order.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Upcoming is one qualifying entry from the birthday window query:
// a record's name and the candidate occurrence of its birthday.
type Upcoming struct {
	Name string
	Date time.Time
}

// QueryOptions tune the upcoming-birthday window.
type QueryOptions struct {
	// WindowDays is the inclusive size of the lookahead window.
	// Zero means DefaultWindowDays.
	WindowDays int
	// Rollover moves a candidate that has already passed this year into
	// next year, and substitutes Feb 28 for a Feb 29 birthday in
	// non-leap candidate years. Off by default: the candidate stays in
	// today's year, passed birthdays are excluded, and a Feb 29 birthday
	// in a non-leap year makes the query fail for that record.
	Rollover bool
}

// UpcomingBirthdays returns, in book iteration order, the records whose
// birthday occurrence falls within [today, today+window]. Both bounds
// are inclusive and the comparison is date-granular.
func (b *Book) UpcomingBirthdays(today time.Time, opts QueryOptions) ([]Upcoming, error) {
	window := opts.WindowDays
	if window == 0 {
		window = DefaultWindowDays
	}
	start := dateOnly(today)
	end := start.AddDate(0, 0, window)

	var out []Upcoming
	for _, key := range b.order {
		bd, ok := b.records[key].Birthday()
		if !ok {
			continue
		}
		cand, err := candidate(bd, start, opts.Rollover)
		if err != nil {
			return nil, fmt.Errorf("book: record %q: %w", key, err)
		}
		if !cand.Before(start) && !cand.After(end) {
			out = append(out, Upcoming{Name: key, Date: cand})
		}
	}
	return out, nil
}

// candidate places bd's month and day into start's year. With rollover
// enabled a passed occurrence moves to next year and Feb 29 falls back
// to Feb 28 in non-leap years.
func candidate(bd contact.Birthday, start time.Time, rollover bool) (time.Time, error) {
	if !rollover {
		return bd.Occurrence(start.Year())
	}
	occ := occurrenceOrFeb28(bd, start.Year())
	if occ.Before(start) {
		occ = occurrenceOrFeb28(bd, start.Year()+1)
	}
	return occ, nil
}

// occurrenceOrFeb28 is the rollover-mode occurrence: the only way
// Occurrence fails is a Feb 29 birthday in a non-leap year.
func occurrenceOrFeb28(bd contact.Birthday, year int) time.Time {
	occ, err := bd.Occurrence(year)
	if err != nil {
		return time.Date(year, time.February, 28, 0, 0, 0, 0, time.UTC)
	}
	return occ
}

// dateOnly truncates t to midnight UTC on its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
