// Package apperrors provides the error type used across the gateway. It extends
// the standard error interface with error chaining, HTTP status codes, and
// message rewriting while staying compatible with errors.Is / errors.As.
package apperrors

// Error is the application error interface. Methods return Error so call
// sites can chain derivations off a package-level sentinel.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derives a fresh error using current as template
	Msg(msg string) Error                  // new error with message, wraps original
	MsgErr(msg string, err ...error) Error // new error with message, wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetExpandError(bool) Error             // controls whether ErrorAll expands wrapped errors
	SetStatusCode(int) Error               // sets the HTTP status code for the error
	StatusCode() int                       // returns the current status code
	ErrorAll() string                      // full message including wrapped errors
	UnwrapAll() []error                    // all wrapped errors
}
