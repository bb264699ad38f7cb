package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultSentinel in a configured list selects DefaultOffsets.
	DefaultSentinel = -1

	// ToleranceMinutes is the matching band around each offset.
	ToleranceMinutes = 2

	// MaxOffsetMinutes bounds a configured offset (one week).
	MaxOffsetMinutes = 7 * 24 * 60
)

// DefaultOffsets returns the offsets used when the sentinel is configured:
// 24 hours, 3 hours and 1 hour before the appointment.
func DefaultOffsets() []int {
	return []int{1440, 180, 60}
}

var errNotArray = errors.New("reminder offsets must be a JSON array of integers")

// ParseOffsets decodes a stored reminder_minutes column. NULL or empty input is
// an empty list. Anything that is not an array of integers in
// [math.MinInt32, MaxOffsetMinutes] is rejected as a whole.
func ParseOffsets(raw []byte) ([]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var values []json.Number
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errNotArray
	}

	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("reminder offset %q is not an integer", v.String())
		}
		if n > MaxOffsetMinutes || n < math.MinInt32 {
			return nil, fmt.Errorf("reminder offset %d out of range", n)
		}
		out = append(out, int(n))
	}
	return out, nil
}

// EffectiveOffsets resolves a configured list into deliverable thresholds.
// The sentinel replaces the whole list with DefaultOffsets, non-positive
// values are dropped and duplicates keep their first position.
func EffectiveOffsets(configured []int) []int {
	source := configured
	for _, m := range configured {
		if m == DefaultSentinel {
			source = DefaultOffsets()
			break
		}
	}

	out := make([]int, 0, len(source))
	seen := make(map[int]struct{}, len(source))
	for _, m := range source {
		if m <= 0 {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// MergeOffsets returns the union of a and b without duplicates, a's order first.
func MergeOffsets(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	seen := make(map[int]struct{}, len(a)+len(b))
	for _, list := range [][]int{a, b} {
		for _, m := range list {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

func containsOffset(list []int, m int) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}
