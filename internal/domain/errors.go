package domain

import "errors"

// Error kinds shared by the parsers, extractors and adapters. Callers wrap
// them with context and match with errors.Is.
var (
	// ErrTransport reports unreachable upstream data or a non-success response.
	ErrTransport = errors.New("transport failure")

	// ErrParse reports malformed text, XML or archive content.
	ErrParse = errors.New("parse failure")

	// ErrNotFound reports a missing station, placemark or cell.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported reports an operation that has no implementation yet.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInvalidClassificationInput reports a severity or certainty string
	// outside the CAP vocabulary.
	ErrInvalidClassificationInput = errors.New("invalid classification input")
)
