// Package shell tokenizes command lines and dispatches them against an
// address book. It owns all user-facing message formatting; the core
// packages only return typed errors and never print.
package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// Lines shown by displays around the command loop.
const (
	Greeting = "Welcome to the assistant bot!"
	Farewell = "Good bye!"
)

const helpText = `Commands:
  add <name> <phone>                  add a contact (or another phone via the same name)
  change <name> <old> <new>           replace a phone number
  phone <name>                        show a contact's phone numbers
  all                                 list all contacts
  delete <name>                       delete a contact
  add-birthday <name> <DD.MM.YYYY>    set a contact's birthday
  show-birthday <name>                show a contact's birthday
  birthdays                           list birthdays in the coming week
  hello                               greet the bot
  exit | close                        leave`

// Clock supplies "today" for the birthdays query. Injectable for tests.
type Clock func() time.Time

// Options tune session behavior. The zero value preserves the classic
// behavior: 7-day window, no year rollover, non-atomic phone edits.
type Options struct {
	WindowDays int
	Rollover   bool
	AtomicEdit bool
}

// Result is the outcome of executing one command line.
type Result struct {
	Output string
	Quit   bool
}

// Session executes command lines against one address book. Not safe for
// concurrent use; callers must serialize.
type Session struct {
	book *book.Book
	now  Clock
	opts Options
}

// NewSession creates a session over b. A nil clock means time.Now.
func NewSession(b *book.Book, opts Options, now Clock) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{book: b, now: now, opts: opts}
}

// Execute runs one command line and returns its display output. The
// command token is case-insensitive; arguments keep their case. Core
// errors are formatted here, so Execute itself never fails.
func (s *Session) Execute(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "exit", "close":
		return Result{Output: Farewell, Quit: true}
	case "hello":
		return Result{Output: "How can I help you?"}
	case "help":
		return Result{Output: helpText}
	case "add":
		return formatted(s.addContact(args))
	case "change":
		return formatted(s.changePhone(args))
	case "phone":
		return formatted(s.showPhones(args))
	case "all":
		return Result{Output: s.showAll()}
	case "delete":
		return formatted(s.deleteContact(args))
	case "add-birthday":
		return formatted(s.addBirthday(args))
	case "show-birthday":
		return formatted(s.showBirthday(args))
	case "birthdays":
		return formatted(s.birthdays())
	default:
		return Result{Output: fmt.Sprintf("Invalid command %q. Type help for a list of commands.", command)}
	}
}

// formatted folds a handler's error into its display output.
func formatted(out string, err error) Result {
	if err != nil {
		return Result{Output: FormatError(err)}
	}
	return Result{Output: out}
}

// FormatError renders any core or usage error as a single display line.
func FormatError(err error) string {
	return "Error: " + err.Error()
}

// usageError reports a wrong argument count for a command.
func usageError(usage string) error {
	return fmt.Errorf("expected %s", usage)
}

func (s *Session) addContact(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageError("add <name> <phone>")
	}
	name, number := args[0], args[1]
	rec, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(number); err != nil {
		return "", err
	}
	s.book.Add(rec)
	return fmt.Sprintf("Contact %s added with phone number %s", name, number), nil
}

func (s *Session) changePhone(args []string) (string, error) {
	if len(args) != 3 {
		return "", usageError("change <name> <old-phone> <new-phone>")
	}
	name, oldNumber, newNumber := args[0], args[1], args[2]
	rec, err := s.book.Find(name)
	if err != nil {
		return "", err
	}
	edit := rec.EditPhone
	if s.opts.AtomicEdit {
		edit = rec.ReplacePhone
	}
	if err := edit(oldNumber, newNumber); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number for %s changed from %s to %s", name, oldNumber, newNumber), nil
}

func (s *Session) showPhones(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("phone <name>")
	}
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := rec.Phones()
	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return fmt.Sprintf("%s's phones: %s", args[0], strings.Join(numbers, ", ")), nil
}

func (s *Session) showAll() string {
	if s.book.Len() == 0 {
		return "No contacts."
	}
	lines := make([]string, 0, s.book.Len())
	for _, rec := range s.book.Records() {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n")
}

func (s *Session) deleteContact(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("delete <name>")
	}
	name := args[0]
	if s.book.Delete(name) {
		return fmt.Sprintf("Contact %s deleted", name), nil
	}
	return fmt.Sprintf("Contact %s not found", name), nil
}

func (s *Session) addBirthday(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageError("add-birthday <name> <DD.MM.YYYY>")
	}
	name, date := args[0], args[1]
	rec, err := s.book.Find(name)
	if err != nil {
		return "", err
	}
	if err := rec.SetBirthday(date); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday for %s added.", name), nil
}

func (s *Session) showBirthday(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("show-birthday <name>")
	}
	name := args[0]
	rec, err := s.book.Find(name)
	if err != nil {
		return "", err
	}
	bd, ok := rec.Birthday()
	if !ok {
		return fmt.Sprintf("No birthday found for %s.", name), nil
	}
	return fmt.Sprintf("%s's birthday is %s", name, bd), nil
}

func (s *Session) birthdays() (string, error) {
	upcoming, err := s.book.UpcomingBirthdays(s.now(), book.QueryOptions{
		WindowDays: s.opts.WindowDays,
		Rollover:   s.opts.Rollover,
	})
	if err != nil {
		return "", err
	}
	window := s.opts.WindowDays
	if window == 0 {
		window = book.DefaultWindowDays
	}
	if len(upcoming) == 0 {
		return fmt.Sprintf("No upcoming birthdays in the next %d days.", window), nil
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("Name: %s, Birthday: %s", u.Name, u.Date.Format(contact.DateLayout))
	}
	return strings.Join(lines, "\n"), nil
}
