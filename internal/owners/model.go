package owners

import "time"

// Owner represents the entity documents are attributed to. DocumentIDs is the
// owner-side half of the owner/document link and is mutated only by the
// ingestion pipeline's append step.
type Owner struct {
	ID          string
	Name        string
	DocumentIDs []string
	CreatedAt   time.Time
}
