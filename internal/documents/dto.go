package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	OwnerName    string    `json:"ownerName,omitempty"`
	StoredName   string    `json:"storedName"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	PageCount    *int      `json:"pageCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PageResponse wraps one window of an owner's documents with its totals.
type PageResponse struct {
	Documents   []DocumentResponse `json:"documents"`
	Total       int                `json:"total"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

func toResponse(doc Document, ownerName string) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		OwnerID:      doc.OwnerID,
		OwnerName:    ownerName,
		StoredName:   doc.StoredName,
		OriginalName: doc.OriginalName,
		ContentType:  doc.ContentType,
		SizeBytes:    doc.SizeBytes,
		PageCount:    doc.PageCount,
		CreatedAt:    doc.CreatedAt,
	}
}

func toPageResponse(page Page) PageResponse {
	docs := make([]DocumentResponse, 0, len(page.Documents))
	for _, doc := range page.Documents {
		docs = append(docs, toResponse(doc, ""))
	}
	return PageResponse{
		Documents:   docs,
		Total:       page.Total,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}
