package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docanalytics-backend/internal/shared/server/middleware"
	"docanalytics-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

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
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/sorted", h.sorted)
	rg.GET("/documents/classified", h.classified)
	rg.GET("/documents/:id/download", h.download)
	rg.PUT("/documents/:id", h.update)
	rg.DELETE("/documents/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

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

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.respondServiceError(c, err, "failed to upload document")
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc, false))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	query := c.Query("q")

	docs, stats, err := h.Svc.Search(c.Request.Context(), userID, query)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
		return
	}

	respond.OK(c, gin.H{
		"stats":     toStatsResponse(stats),
		"documents": toResponses(docs, true),
	})
}

func (h *Handler) sorted(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, stats, err := h.Svc.Sorted(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	respond.OK(c, gin.H{
		"stats":     toStatsResponse(stats),
		"documents": toResponses(docs, false),
	})
}

func (h *Handler) classified(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	groups, stats, err := h.Svc.Classified(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to group documents", nil)
		return
	}

	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{
			Label:     g.Label,
			Documents: toResponses(g.Documents, false),
		})
	}

	respond.OK(c, gin.H{
		"stats":  toStatsResponse(stats),
		"groups": out,
	})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	url, err := h.Svc.DownloadURL(c.Request.Context(), userID, id)
	if err != nil {
		h.respondServiceError(c, err, "failed to sign download url")
		return
	}

	respond.OK(c, gin.H{"url": url})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

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

	doc, err := h.Svc.Update(c.Request.Context(), userID, id, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.respondServiceError(c, err, "failed to update document")
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc, false))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondServiceError(c, err, "failed to delete document")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyFile):
		respond.Error(c, http.StatusBadRequest, "empty_file", "uploaded file is empty", nil)
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "only PDF and Word (.docx) files are allowed", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
