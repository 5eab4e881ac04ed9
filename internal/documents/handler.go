package documents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/owners"
	"docvault-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/owners/:id/documents", h.upload)
	rg.GET("/owners/:id/documents", h.listByOwner)
	rg.GET("/documents", h.listAll)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/content", h.content)
}

func (h *Handler) upload(c *gin.Context) {
	ownerID := c.Param("id")
	c.Set("ownerId", ownerID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Ingest(c.Request.Context(), ownerID, Upload{
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		DeclaredSize: fileHeader.Size,
		Body:         file,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnsupportedMediaType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only application/pdf uploads are accepted", nil)
		case errors.Is(err, ErrPayloadTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "upload exceeds the size limit", nil)
		case errors.Is(err, ErrParseFailed):
			respond.Error(c, http.StatusUnprocessableEntity, "unreadable_document", "document could not be parsed", nil)
		case errors.Is(err, owners.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "owner_not_found", "owner not found", nil)
		case errors.Is(err, ErrPartialLink):
			respond.Error(c, http.StatusInternalServerError, "partial_link_failure", "document was stored but could not be linked to its owner; verify state before retrying", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest document", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc, ""))
}

func (h *Handler) listByOwner(c *gin.Context) {
	ownerID := c.Param("id")
	c.Set("ownerId", ownerID)

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	result, err := h.Svc.ListByOwner(c.Request.Context(), ownerID, page, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toPageResponse(result))
}

func (h *Handler) listAll(c *gin.Context) {
	docs, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc, ""))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, ownerName, err := h.Svc.GetByID(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc, ownerName))
}

func (h *Handler) content(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, _, err := h.Svc.GetByID(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}

	rc, err := h.Svc.OpenContent(c.Request.Context(), doc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open document content", nil)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.ContentType, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + doc.OriginalName + `"`,
	})
}

// queryInt parses a positive integer query parameter, substituting def for
// missing, malformed, or non-positive values. These parameters never produce
// an error response.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return def
	}
	return parsed
}
