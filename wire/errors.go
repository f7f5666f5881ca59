package wire

import "errors"

// Sentinel errors for the wire codec. Each is distinct and non-overlapping,
// matched with errors.Is; the human-readable detail is added at the call
// site with fmt.Errorf("...: %w", ...).
var (
	// ErrMalformedEnvelope is returned when an envelope's declared size
	// doesn't match the bytes actually read, or a field carries an
	// illegal variable-size-width code.
	ErrMalformedEnvelope = errors.New("wire: malformed envelope")

	// ErrUnknownType is returned when a fixed-width field references a
	// type-id with no registered descriptor.
	ErrUnknownType = errors.New("wire: unknown fixed-width type")

	// ErrNameTooLong is returned when a field name's modified-UTF-8
	// encoding exceeds 255 bytes.
	ErrNameTooLong = errors.New("wire: name too long")

	// ErrTruncatedInput is returned when the source ends before the
	// envelope's declared size is reached.
	ErrTruncatedInput = errors.New("wire: truncated input")
)
