package domain

// LogEntry is one exercise as shown in a user's log.
type LogEntry struct {
	Description string `json:"description"`
	Duration    *int   `json:"duration"`
	Date        string `json:"date"`
}

// Log is the filtered, optionally truncated view of a user's exercises.
// Count always equals len(Log).
type Log struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	UserID   string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

// NewLog projects exercises, already filtered, into the log view of user.
func NewLog(user *User, exercises []Exercise) Log {
	entries := make([]LogEntry, len(exercises))
	for i, ex := range exercises {
		entries[i] = LogEntry{Description: ex.Description, Duration: ex.Duration, Date: ex.Date}
	}
	return Log{
		Username: user.Username,
		Count:    len(entries),
		UserID:   user.ID,
		Log:      entries,
	}
}
