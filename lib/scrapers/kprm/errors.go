package kprm

import "fmt"

// ConnectionError signals that the register file or page could not be
// fetched.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("kprm: fetching %s: %s", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ParseError signals that the register page did not expose a usable
// download link.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kprm: parsing %s: %s", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
