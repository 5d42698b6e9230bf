package common

import (
	"fmt"
	"slices"
)

// ValidateInputSizes rejects empty size sets and non-positive sizes. The
// log and nlogn candidates are undefined at n <= 0.
func ValidateInputSizes(sizes []int) error {
	if len(sizes) == 0 {
		return ErrEmptyInputSizes
	}

	for i, n := range sizes {
		if n <= 0 {
			return fmt.Errorf("%w: sizes[%d] = %d", ErrNonPositiveInputSize, i, n)
		}
	}

	return nil
}

func IsValidObjective(objective string) bool {
	return slices.Contains(ValidObjectives, objective)
}
