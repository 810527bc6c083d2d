// Package cerrs implements constant errors raised by tdl's CLI and server
// front ends. These are plumbing-level sentinel errors — "no source
// given", "invalid listen address" — distinct from the Diagnostic records
// the engine itself produces; the engine never returns an error, only
// diagnostics.
package cerrs

// Error defines a constant error.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

const (
	ErrNoSource        = Error("no source given")
	ErrEmptySource     = Error("source is empty")
	ErrInvalidInput    = Error("invalid input path")
	ErrInvalidOutput   = Error("invalid output path")
	ErrServerClosed    = Error("server closed")
	ErrInvalidAddress  = Error("invalid listen address")
	ErrWebSocketClosed = Error("websocket connection closed")
)
