package activity

import "time"

// MaxEntries caps the log. The log is a recency window, not an audit trail:
// the oldest entries fall off once the cap is reached.
const MaxEntries = 50

// Entry is one line of the activity log.
type Entry struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type ServiceAPI interface {
	Record(userName, action string) error
	Recent() ([]Entry, error)
	ReplaceAll(entries []Entry) error
	Clear() error
}

type RepositoryAPI interface {
	// Insert prepends the entry and trims the log to MaxEntries.
	Insert(entry Entry) error
	// Recent returns up to MaxEntries entries, most recent first.
	Recent() ([]Entry, error)
	ReplaceAll(entries []Entry) error
	Clear() error
}
