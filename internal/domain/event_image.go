package domain

import "time"

// EventImage is a homepage slider image uploaded by a counselor.
// Position controls display order, lowest first.
type EventImage struct {
	ID          string
	Title       string
	Description string
	FileName    string
	FilePath    string
	UploadedBy  string
	Position    int
	CreatedAt   time.Time
}
