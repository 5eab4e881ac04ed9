package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"docvault-backend/internal/bootstrap"
	"docvault-backend/internal/documents"
	"docvault-backend/internal/inspect/pdftest"
	"docvault-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func createOwner(t *testing.T, app *bootstrap.App, name string) string {
	t.Helper()
	body := strings.NewReader(fmt.Sprintf(`{"name":%q}`, name))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/owners", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create owner: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode owner response: %v", err)
	}
	if resp.ID == "" {
		t.Fatalf("expected owner id in response")
	}
	return resp.ID
}

func uploadFile(t *testing.T, app *bootstrap.App, ownerID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/owners/"+ownerID+"/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestDocumentLifecycle(t *testing.T) {
	app := newTestApp(t)
	ownerID := createOwner(t, app, "Alice")
	pdfData := pdftest.MinimalPDF(1)

	w := uploadFile(t, app, ownerID, "report.pdf", "application/pdf", pdfData)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created documents.DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.PageCount == nil || *created.PageCount != 1 {
		t.Fatalf("expected pageCount 1, got %v", created.PageCount)
	}
	if created.OwnerID != ownerID {
		t.Fatalf("expected ownerId %s, got %s", ownerID, created.OwnerID)
	}

	// Single-document read denormalizes the owner name.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.ID, nil)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get document: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var fetched documents.DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if fetched.OwnerName != "Alice" {
		t.Fatalf("expected ownerName Alice, got %q", fetched.OwnerName)
	}

	// The owner view resolves the linked document.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/owners/"+ownerID, nil)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get owner: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var ownerResp struct {
		DocumentIDs []string `json:"documentIds"`
		Documents   []struct {
			ID string `json:"id"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ownerResp); err != nil {
		t.Fatalf("decode owner: %v", err)
	}
	if len(ownerResp.DocumentIDs) != 1 || ownerResp.DocumentIDs[0] != created.ID {
		t.Fatalf("expected owner document ids [%s], got %v", created.ID, ownerResp.DocumentIDs)
	}
	if len(ownerResp.Documents) != 1 || ownerResp.Documents[0].ID != created.ID {
		t.Fatalf("expected resolved document %s, got %+v", created.ID, ownerResp.Documents)
	}

	// Content download returns the staged bytes verbatim.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.ID+"/content", nil)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get content: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected Content-Type application/pdf, got %q", ct)
	}
	if !bytes.Equal(w.Body.Bytes(), pdfData) {
		t.Fatalf("content mismatch: got %d bytes, want %d", w.Body.Len(), len(pdfData))
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := newTestApp(t)
	ownerID := createOwner(t, app, "Bob")

	w := uploadFile(t, app, ownerID, "notes.txt", "text/plain", []byte("just text"))
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "unsupported_media_type") {
		t.Fatalf("expected unsupported_media_type code, got %s", w.Body.String())
	}

	// The owner's document list stays untouched.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners/"+ownerID, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	var ownerResp struct {
		DocumentIDs []string `json:"documentIds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ownerResp); err != nil {
		t.Fatalf("decode owner: %v", err)
	}
	if len(ownerResp.DocumentIDs) != 0 {
		t.Fatalf("expected no linked documents, got %v", ownerResp.DocumentIDs)
	}
}

func TestUploadRejectsUnreadablePDF(t *testing.T) {
	app := newTestApp(t)
	ownerID := createOwner(t, app, "Carol")

	w := uploadFile(t, app, ownerID, "broken.pdf", "application/pdf", []byte("%PDF-1.4 garbage"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "unreadable_document") {
		t.Fatalf("expected unreadable_document code, got %s", w.Body.String())
	}
}

func TestUploadUnknownOwner(t *testing.T) {
	app := newTestApp(t)

	w := uploadFile(t, app, "no-such-owner", "report.pdf", "application/pdf", pdftest.MinimalPDF(1))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "owner_not_found") {
		t.Fatalf("expected owner_not_found code, got %s", w.Body.String())
	}
}

func TestListByOwnerPaginationOverHTTP(t *testing.T) {
	app := newTestApp(t)
	ownerID := createOwner(t, app, "Dana")

	for i := 0; i < 15; i++ {
		doc := documents.Document{
			ID:           fmt.Sprintf("doc-%02d", i),
			OwnerID:      ownerID,
			StoredName:   fmt.Sprintf("%d_f.pdf", i),
			OriginalName: "f.pdf",
			ContentType:  documents.AllowedContentType,
			SizeBytes:    512,
			CreatedAt:    time.Now().UTC(),
		}
		if err := app.DocumentsRepo.Create(context.Background(), doc); err != nil {
			t.Fatalf("seed doc %d: %v", i, err)
		}
	}

	page := fetchPage(t, app, "/api/v1/owners/"+ownerID+"/documents?page=2&limit=10")
	if len(page.Documents) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(page.Documents))
	}
	if page.Total != 15 || page.CurrentPage != 2 || page.TotalPages != 2 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if page.Documents[0].ID != "doc-10" {
		t.Fatalf("expected window to start at doc-10, got %s", page.Documents[0].ID)
	}

	// Beyond the last page: empty window, accurate totals.
	beyond := fetchPage(t, app, "/api/v1/owners/"+ownerID+"/documents?page=5&limit=10")
	if len(beyond.Documents) != 0 || beyond.Total != 15 || beyond.TotalPages != 2 {
		t.Fatalf("unexpected beyond-last page: %+v", beyond)
	}

	// Malformed parameters fall back to defaults.
	fallback := fetchPage(t, app, "/api/v1/owners/"+ownerID+"/documents?page=abc&limit=-1")
	if fallback.CurrentPage != 1 || len(fallback.Documents) != 10 {
		t.Fatalf("expected defaulted first page of 10, got %+v", fallback)
	}
}

func TestListByOwnerUnknownOwnerIsEmptySuccess(t *testing.T) {
	app := newTestApp(t)

	page := fetchPage(t, app, "/api/v1/owners/no-such-owner/documents")
	if page.Total != 0 || len(page.Documents) != 0 || page.TotalPages != 0 {
		t.Fatalf("expected empty zero-total page, got %+v", page)
	}

	// The owner read path, by contrast, reports the absence.
	r := httptest.NewRequest(http.MethodGet, "/api/v1/owners/no-such-owner", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for owner read, got %d", w.Code)
	}
}

func TestDeleteOwnerLeavesDocumentsReadable(t *testing.T) {
	app := newTestApp(t)
	ownerID := createOwner(t, app, "Eve")

	w := uploadFile(t, app, ownerID, "kept.pdf", "application/pdf", pdftest.MinimalPDF(3))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d", w.Code)
	}
	var created documents.DocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/owners/"+ownerID, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, r)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete owner: expected 204, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/owners/"+ownerID, nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, r)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	// No cascade: the record survives with an empty owner name.
	r = httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.ID, nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected orphaned document readable, got %d", rec.Code)
	}
	var orphan documents.DocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &orphan); err != nil {
		t.Fatalf("decode orphan: %v", err)
	}
	if orphan.OwnerName != "" {
		t.Fatalf("expected empty ownerName, got %q", orphan.OwnerName)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func fetchPage(t *testing.T, app *bootstrap.App, url string) documents.PageResponse {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d: %s", url, w.Code, w.Body.String())
	}
	var page documents.PageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}
