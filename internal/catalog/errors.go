package catalog

import "errors"

var (
	// ErrSourceUnavailable means the catalog resource could not be opened.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrMalformedEnvelope means the outer container failed to parse; nothing was loaded.
	ErrMalformedEnvelope = errors.New("malformed catalog envelope")

	// ErrMalformedRecord marks a single skipped record.
	ErrMalformedRecord = errors.New("malformed catalog record")

	// ErrTruncatedBinaryData means the binary stream ended before the declared
	// record count; the records read so far are still returned.
	ErrTruncatedBinaryData = errors.New("truncated binary catalog data")
)
