package cli

import (
	"strings"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/errs"
)

// parseDuration reads an HH:MM:SS flag value.
func parseDuration(flag, value string) (int, error) {
	secs, err := duration.ParseHMS(value)
	if err != nil {
		return 0, errs.InvalidInput("--%s: %v", flag, err)
	}
	return secs, nil
}

// position converts a 1-based CLI position into a 0-based index.
func position(flag string, value int) (*int, error) {
	if value == 0 {
		return nil, nil
	}
	if value < 0 {
		return nil, errs.InvalidInput("--%s must be 1 or greater", flag)
	}
	idx := value - 1
	return &idx, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
