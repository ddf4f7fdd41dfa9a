package cli

import (
	"fmt"

	"github.com/example/newsroom/internal/errs"
)

// FormatError renders a command failure with a hint matching its category.
func FormatError(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	switch errs.CategoryOf(err) {
	case errs.CategoryUnauthorized:
		msg += "\nHint: sign in with `newsroom login --email you@newsroom.local`"
	case errs.CategoryReloadRequired:
		msg += "\nHint: the order shown may be stale; reload the rundown before editing again"
	case errs.CategoryRetryable:
		msg += "\nHint: the database did not answer; retry the command"
	}
	return msg
}
