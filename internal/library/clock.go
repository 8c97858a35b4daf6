package library

import "time"

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator produces fresh material ids. Ids are creation-timestamp
// milliseconds in production, matching the id scheme of the seed catalog.
type IDGenerator interface {
	NewID(now time.Time) int64
}

// TimestampIDGenerator derives ids from the supplied creation time.
type TimestampIDGenerator struct{}

func (TimestampIDGenerator) NewID(now time.Time) int64 { return now.UnixMilli() }

// Timestamp layouts for the persisted documents. The original stored
// locale-dependent strings; these are pinned so documents are stable
// across machines.
const (
	accessTimeLayout   = "2006-01-02 15:04:05"
	feedbackDateLayout = "2006-01-02"
)
