// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayLayout renders dates the way the API returns them, e.g. "Thu Jan 05 2023".
const DayLayout = "Mon Jan 02 2006"

// Exercise is a single logged activity. It is immutable once stored.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Weak reference, checked on insert only
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"` // Minutes by convention
	Date        time.Time          `bson:"date" json:"date"`
}

// LogEntry is the projection of an Exercise returned inside a log.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// ExerciseLog is a user's filtered activity log.
type ExerciseLog struct {
	User  User
	Count int
	Log   []LogEntry
}

// DayString formats t as a day-string in UTC.
func DayString(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ToLogEntry projects the stored exercise into its log form.
func (e *Exercise) ToLogEntry() LogEntry {
	return LogEntry{
		Description: e.Description,
		Duration:    e.Duration,
		Date:        DayString(e.Date),
	}
}
