package config

import "fmt"

// ErrorKind discriminates settings validation failures.
type ErrorKind int

const (
	// KindMissing means settings.json could not be opened.
	KindMissing ErrorKind = iota + 1
	// KindMalformed means the file content is not valid JSON.
	KindMalformed
	// KindInvalidRange means a duration or intensity bound violates the
	// allowed ranges.
	KindInvalidRange
	// KindMissingFields means a required string field is absent or empty.
	KindMissingFields
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindMalformed:
		return "malformed"
	case KindInvalidRange:
		return "invalid_range"
	case KindMissingFields:
		return "missing_fields"
	default:
		return "unknown"
	}
}

// Error is a typed settings failure. Every failure mode of Loader.Load is
// reported as *Error so callers can branch on Kind.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("settings %s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("settings %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// UserMessage is the popup text shown in-game for this failure. It always
// points the user at the documentation file written next to settings.json.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindMissing:
		return "Error: Missing config file! Read readme.txt in the mod's config folder."
	case KindMissingFields:
		return "Error: Missing required fields in config file! Read readme.txt in the mod's config folder."
	default:
		return "Error: Invalid config file! Read readme.txt in the mod's config folder."
	}
}
