package cmd

import (
	"errors"

	"vanguard/core"
)

// errorMessage text shown to the operator
func errorMessage(err error) string {
	var e *core.Error
	if errors.As(err, &e) {
		return e.Error()
	}

	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return "not logged in, run `vanguard login` first"
	default:
		return err.Error()
	}
}
