package rundown

import (
	"fmt"

	"github.com/example/newsroom/internal/errs"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// next holds the single forward step allowed from each rundown status.
var next = map[Status]Status{
	StatusDraft:    StatusApproved,
	StatusApproved: StatusOnAir,
	StatusOnAir:    StatusClosed,
}

// CanTransitionRundown evaluates whether a rundown may move from current to target.
// Rules:
// - target must be a known status
// - current == target is an accepted no-op
// - otherwise only the single forward step is allowed (draft -> approved -> on_air -> closed)
func CanTransitionRundown(current, target Status) GuardResult {
	if !ValidStatus(target) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown rundown status %q", target),
		}
	}
	if current == target {
		return GuardResult{Allowed: true}
	}
	if step, ok := next[current]; ok && step == target {
		return GuardResult{Allowed: true}
	}
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("cannot move rundown from %s to %s", current, target),
	}
}

// TransitionRundown returns the new status or an InvalidTransition failure.
func TransitionRundown(current, target Status) (Status, error) {
	if !CanTransitionRundown(current, target).Allowed {
		return current, errs.InvalidTransition("rundown", string(current), string(target))
	}
	return target, nil
}

// ForceTransitionRundown is the explicit override: any known target is accepted.
func ForceTransitionRundown(current, target Status) (Status, error) {
	if !ValidStatus(target) {
		return current, errs.InvalidTransition("rundown", string(current), string(target))
	}
	return target, nil
}

// CanSetItemStatus evaluates whether an item may take the given status.
// Item statuses are independently settable; breaks carry no status.
func CanSetItemStatus(t ItemType, status ItemStatus) GuardResult {
	if t == ItemBreak {
		return GuardResult{
			Allowed: false,
			Reason:  "break items have no approval status",
		}
	}
	if !ValidItemStatus(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown item status %q", status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanEditTree evaluates whether blocks and items of a rundown may change.
// A closed rundown is the archived record of what aired.
func CanEditTree(status Status) GuardResult {
	if status == StatusClosed {
		return GuardResult{
			Allowed: false,
			Reason:  "rundown is closed; reopen it with a forced transition to edit",
		}
	}
	return GuardResult{Allowed: true}
}
