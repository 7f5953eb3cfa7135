package apperr

import "errors"

// ErrInvalidInput is returned when a command argument fails validation, e.g. a
// missing argument or a malformed URL. Validation failures are reported to the
// caller and never logged.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned by any collaborator (DNS resolver, subdomain
// search, geolocation) when the call fails at the transport level, the server
// responds with a non-2xx status code, or the body cannot be understood.
var ErrRequestFailed = errors.New("request failed")

// ErrUnknownCommand is returned when the command verb is not recognised.
var ErrUnknownCommand = errors.New("command not recognized")
