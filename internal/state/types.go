package state

// Version is the only schema version this app reads or writes.
const Version = 1

// AppState is the single root document persisted locally and remotely.
type AppState struct {
	Version  int                       `json:"version"`
	Topics   []*Topic                  `json:"topics"`
	Progress map[string]*TopicProgress `json:"progress"`
}

// Topic is a named subject with its own flashcard pool.
type Topic struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Cards []Card `json:"cards"`
}

// Card is a single flashcard.
type Card struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// TopicProgress holds the session log for one topic, oldest first.
type TopicProgress struct {
	Sessions []SessionRecord `json:"sessions"`
}

// SessionRecord is one completed drill. Records are never modified after
// being appended.
type SessionRecord struct {
	Date        string `json:"date"` // YYYY-MM-DD, local calendar day
	ScorePct    int    `json:"scorePct"`
	Confidence  int    `json:"confidence"`
	Correct     int    `json:"correct,omitempty"`
	Total       int    `json:"total,omitempty"`
	DurationSec int    `json:"durationSec,omitempty"`
}

// TopicColors is the preset palette cycled through for new topics.
var TopicColors = []string{
	"#e8a848", "#f87171", "#4ade80", "#60a5fa",
	"#c084fc", "#fb923c", "#2dd4bf", "#f472b6",
	"#a3e635", "#fbbf24",
}
