package core

import (
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrForbidden the session may not manage the listing
	ErrForbidden ErrorCode = 100001
	// ErrInvalidConfig invalid configuration
	ErrInvalidConfig ErrorCode = 100002

	// ErrFetchFailed list load failed, non 2xx or network error
	ErrFetchFailed ErrorCode = 100100
	// ErrMutationFailed update or delete failed, the optimistic change was rolled back
	ErrMutationFailed ErrorCode = 100101
	// ErrListingNotFound no listing with the id
	ErrListingNotFound ErrorCode = 100102
	// ErrInvalidPatch patch does not fit the listing
	ErrInvalidPatch ErrorCode = 100103
	// ErrInvalidRecord structurally impossible api payload
	ErrInvalidRecord ErrorCode = 100104
	// ErrStaleFetch fetch superseded by a newer one
	ErrStaleFetch ErrorCode = 100105
	// ErrInvalidForm create form rejected before sending
	ErrInvalidForm ErrorCode = 100106

	// ErrSessionNotFound no stored session
	ErrSessionNotFound ErrorCode = 100200
	// ErrSendFailed message not delivered
	ErrSendFailed ErrorCode = 100201
	// ErrLoginFailed credentials rejected or no usable token returned
	ErrLoginFailed ErrorCode = 100202
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Error error with the failed operation and the api response
type Error struct {
	Code ErrorCode
	Op   string
	// Status http status, 0 for network errors
	Status int
	// Msg message field of the response body when present
	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (%d)", e.Op, msg, e.Status)
	}

	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is match by error code
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// Message text to show the user
func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Code.String()
}
