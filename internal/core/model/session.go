package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is a completed interval. Records are never modified once created.
type SessionRecord struct {
	ID              uuid.UUID
	Mode            Mode
	DurationMinutes int
	CompletedAt     time.Time
}

func (record SessionRecord) String() string {
	return fmt.Sprintf("%s session (%d minutes) at %s",
		record.Mode, record.DurationMinutes, record.CompletedAt.Format("15:04:05"))
}

// Progress is the goal tracker's view for display.
type Progress struct {
	Completed int
	Goal      int
}

// Reached reports whether a goal is set and has been met.
func (progress Progress) Reached() bool {
	return progress.Goal > 0 && progress.Completed >= progress.Goal
}

func (progress Progress) String() string {
	return fmt.Sprintf("Goal: %d/%d sessions completed", progress.Completed, progress.Goal)
}
