package mcts

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sentinel errors for the core's precondition violations. None of these are
// recoverable within the package: every one is a programming or data-shape
// bug on the caller's side, never a transient failure (the core performs no
// I/O).
var (
	// ErrBatchSizeMismatch is returned when an external array's outer
	// length doesn't match the batch size N a Roots was created with.
	ErrBatchSizeMismatch = errors.New("mcts: batch size mismatch")

	// ErrLegalActionOutOfRange is returned when an action index falls
	// outside 0..len(policyLogits) at expansion time.
	ErrLegalActionOutOfRange = errors.New("mcts: legal action index out of range")

	// ErrInvalidToPlay is returned when to_play is outside {-1, 1, 2}.
	ErrInvalidToPlay = errors.New("mcts: to_play outside {-1, 1, 2}")
)

// batchSizeError wraps ErrBatchSizeMismatch with the offending array name
// and lengths, via pkg/errors so the caller gets a stack trace.
func batchSizeError(arrayName string, want, got int) error {
	return errors.Wrapf(ErrBatchSizeMismatch, "%s: want len %d, got %d", arrayName, want, got)
}

// checkBatchSizes validates every named (length, want) pair and folds every
// violation into one multierror so a caller sees all of the mismatched
// arrays at once instead of only the first.
func checkBatchSizes(want int, lens map[string]int) error {
	var result *multierror.Error
	for name, got := range lens {
		if got != want {
			result = multierror.Append(result, batchSizeError(name, want, got))
		}
	}
	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return fmt.Sprintf("%d batch size violation(s): %v", len(errs), msgs)
		}
		return result
	}
	return nil
}

func legalActionError(action int32, policyLen int) error {
	return errors.Wrapf(ErrLegalActionOutOfRange, "action %d not in [0, %d)", action, policyLen)
}

func toPlayError(toPlay int8) error {
	return errors.Wrapf(ErrInvalidToPlay, "got %d", toPlay)
}
