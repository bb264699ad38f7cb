package reminder

import (
	"math"
	"time"
)

// Candidate is an upcoming appointment as seen by the reminder scan.
type Candidate struct {
	AppointmentID uint
	MasterID      uint
	MasterEmail   string
	MasterName    string

	ScheduledAt time.Time
	Service     string
	Comment     string
	ClientName  string
	ClientPhone string

	Offsets []int
	Sent    []int
}

// MinutesUntil is the whole number of minutes from now to scheduled, floored.
func MinutesUntil(scheduled, now time.Time) int {
	return int(math.Floor(scheduled.Sub(now).Minutes()))
}

// DueOffsets returns the thresholds that should fire at now: effective
// offsets not yet sent whose target lies within ToleranceMinutes of the
// remaining time. Order follows EffectiveOffsets.
func DueOffsets(scheduled, now time.Time, configured, sent []int) []int {
	until := MinutesUntil(scheduled, now)

	var due []int
	for _, m := range EffectiveOffsets(configured) {
		if containsOffset(sent, m) {
			continue
		}
		if abs(until-m) <= ToleranceMinutes {
			due = append(due, m)
		}
	}
	return due
}

// Due is DueOffsets applied to a candidate.
func (c Candidate) Due(now time.Time) []int {
	return DueOffsets(c.ScheduledAt, now, c.Offsets, c.Sent)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
