// Package feedback renders transient user feedback on the terminal: one-line
// success and error notices, and a spinner shown while a remote call is in
// flight.
package feedback
