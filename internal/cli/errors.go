package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcoot/sportfinder/internal/backend"
)

// Errors
var (
	ErrNotSignedIn        = errors.New("not signed in: run 'sportfinder login' first")
	ErrNoLocation         = errors.New("location unavailable")
	ErrUnsupportedRole    = errors.New("account has an unsupported role")
	ErrInvalidCoordinates = errors.New("invalid latitude or longitude")
)

// displayText is what the terminal shows for each sentinel
var displayText = map[error]string{
	ErrNoLocation:         "Could not get your location. Please enter manually.",
	ErrUnsupportedRole:    "Account has an unsupported role",
	ErrInvalidCoordinates: "Enter a valid latitude and longitude.",
}

// UserError is a failure whose Text is shown to the user as written.
// Err, when set, is the API or storage error behind it.
type UserError struct {
	Text string
	Err  error
}

func (e *UserError) Error() string {
	msg := lowerFirst(strings.TrimSuffix(e.Text, "."))
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// invalid rejects a flag or argument before anything is sent
func invalid(text string) error {
	return &UserError{Text: text}
}

// apiFailure wraps a gateway error with the server's message or the command's fallback
func apiFailure(err error, fallback string) error {
	return &UserError{Text: backend.Message(err, fallback), Err: err}
}

// Message returns the sentence to show the user for err
func Message(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Text
	}
	for sentinel, text := range displayText {
		if errors.Is(err, sentinel) {
			return text
		}
	}
	return err.Error()
}

// printError writes err for the terminal the way cobra would, using the display text
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, "Error:", Message(err))
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	// Leave acronyms alone
	if next, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
