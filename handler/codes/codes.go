package codes

import (
	"errors"
	"strconv"

	"vanguard/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From twirp error of err, core error codes are kept as the custom code
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var code core.ErrorCode
	msg := err.Error()

	var e *core.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message()
	} else if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twerr = twirp.NewError(twirpCode(code), msg)
	return twerr.WithMeta(CustomCodeKey, code.String())
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrListingNotFound:
		return twirp.NotFound
	case core.ErrSessionNotFound, core.ErrLoginFailed:
		return twirp.Unauthenticated
	case core.ErrForbidden:
		return twirp.PermissionDenied
	case core.ErrInvalidPatch, core.ErrInvalidForm, core.ErrInvalidConfig:
		return twirp.InvalidArgument
	case core.ErrStaleFetch:
		return twirp.Canceled
	case core.ErrFetchFailed, core.ErrMutationFailed, core.ErrInvalidRecord, core.ErrSendFailed:
		return twirp.Unavailable
	default:
		return twirp.Internal
	}
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Code response code of err, the custom code when present
func Code(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	return Get(twerr.Code())
}

// Status http status of err
func Status(twerr twirp.Error) int {
	return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
}
