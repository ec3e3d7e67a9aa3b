package sejm

import "fmt"

// ConnectionError signals that the Sejm website could not be reached or
// answered with a failure status.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sejm: fetching %s: %s", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ParseError signals that a process page did not match the expected
// structure.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sejm: parsing %s: %s", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
