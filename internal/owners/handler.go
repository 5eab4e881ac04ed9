package owners

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches owner routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/owners", h.create)
	rg.GET("/owners/:id", h.get)
	rg.DELETE("/owners/:id", h.delete)
}

type createOwnerRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	owner, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create owner", nil)
		}
		return
	}

	c.Set("ownerId", owner.ID)
	respond.JSON(c, http.StatusCreated, toResponse(owner))
}

func (h *Handler) get(c *gin.Context) {
	ownerID := c.Param("id")
	c.Set("ownerId", ownerID)

	owner, docs, err := h.Svc.GetWithDocuments(c.Request.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "owner not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch owner", nil)
		}
		return
	}

	resp := toResponse(owner)
	resolved := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		resolved = append(resolved, gin.H{
			"id":           doc.ID,
			"storedName":   doc.StoredName,
			"originalName": doc.OriginalName,
			"contentType":  doc.ContentType,
			"sizeBytes":    doc.SizeBytes,
			"pageCount":    doc.PageCount,
			"createdAt":    doc.CreatedAt,
		})
	}
	resp["documents"] = resolved
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := c.Param("id")
	c.Set("ownerId", ownerID)

	if err := h.Svc.Delete(c.Request.Context(), ownerID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "owner not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete owner", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func toResponse(owner Owner) gin.H {
	return gin.H{
		"id":          owner.ID,
		"name":        owner.Name,
		"documentIds": owner.DocumentIDs,
		"createdAt":   owner.CreatedAt,
	}
}
