package domain

const (
	MinMood = 1
	MaxMood = 5
)

// MoodLog is the mood score logged for one calendar day.
type MoodLog struct {
	Date CalendarDate `json:"date"`
	Mood int          `json:"mood"`
}

// IsValidMood reports whether mood is on the 1..5 scale.
func IsValidMood(mood int) bool {
	return mood >= MinMood && mood <= MaxMood
}

// UpsertMood drops any entry for log.Date and appends log. Last write wins.
func UpsertMood(logs []MoodLog, log MoodLog) []MoodLog {
	out := make([]MoodLog, 0, len(logs)+1)
	for _, l := range logs {
		if l.Date != log.Date {
			out = append(out, l)
		}
	}
	return append(out, log)
}

// FindMood returns the entry logged for date.
func FindMood(logs []MoodLog, date CalendarDate) (MoodLog, bool) {
	for _, l := range logs {
		if l.Date == date {
			return l, true
		}
	}
	return MoodLog{}, false
}
