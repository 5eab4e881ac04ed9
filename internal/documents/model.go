package documents

import "time"

// Document represents one ingested binary artifact and its metadata. Records
// are immutable once created; OwnerID is set exactly once, at creation.
type Document struct {
	ID           string
	OwnerID      string
	StoredName   string
	OriginalName string
	ContentType  string
	SizeBytes    int64
	PageCount    *int
	CreatedAt    time.Time
}
