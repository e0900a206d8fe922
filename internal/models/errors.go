package models

// ErrorKind classifies file-scoped parse failures. They are non-fatal to a
// batch: a failed file is recorded and skipped.
type ErrorKind string

const (
	ErrEmptyFile         ErrorKind = "EMPTY_FILE"
	ErrPasswordProtected ErrorKind = "PASSWORD_PROTECTED"
	ErrOpenFailed        ErrorKind = "OPEN_FAILED"
	ErrImageBased        ErrorKind = "IMAGE_BASED"
)

// ParseError is a typed, file-scoped failure. Message is the user-facing
// string; Kind never reaches the caller directly.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// NewParseError builds a ParseError with the given kind and message.
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}
