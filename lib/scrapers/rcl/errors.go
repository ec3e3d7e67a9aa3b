package rcl

import "fmt"

// ConnectionError signals that the portal could not be reached or
// answered with a failure status.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rcl: fetching %s: %s", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ParseError signals that a fetched page did not match the expected
// shape.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rcl: parsing %s: %s", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
