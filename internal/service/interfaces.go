package service

import "context"

// StreamWriter interface for streaming export data.
type StreamWriter interface {
	Write(data []byte) error
	Flush()
}

// Exporter streams a collection to a writer.
// Used for dependency injection and mocking in tests.
type Exporter interface {
	Stream(ctx context.Context, resource, format string, writer StreamWriter) (int, error)
}
