package summary

import (
	"math"
	"time"

	"github.com/jerewitdashifts/chat-platform/internal/model"
)

// Classify buckets t by whole-day distance from now: 0 days is today, 1 is
// yesterday, everything else (including future dates) is lastWeek. Callers
// compute this once at conversation creation; the label is never revised.
func Classify(now, t time.Time) model.Section {
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	switch days {
	case 0:
		return model.SectionToday
	case 1:
		return model.SectionYesterday
	default:
		return model.SectionLastWeek
	}
}
