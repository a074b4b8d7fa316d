package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/extract"
	"recruit-backend/internal/llm"
	"recruit-backend/internal/shared/server/respond"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler wires HTTP handlers to the ingestion service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ingestion routes to the per-position group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	positionID := strings.TrimSpace(c.Param("positionId"))
	if positionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "positionId is required", nil)
		return
	}

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

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	var params map[string]any
	if raw := strings.TrimSpace(c.PostForm("trainingParams")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "trainingParams must be a JSON object", nil)
			return
		}
	}

	result, err := h.Svc.Ingest(c.Request.Context(), positionID, fileHeader.Filename, mimeType, data, params)
	if err != nil {
		if result.DocumentID != "" {
			c.Set("documentId", result.DocumentID)
		}
		var extractErr *extract.Error
		var embedErr *llm.EmbeddingError
		switch {
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from document", gin.H{
				"fileName": extractErr.FileName,
				"mimeType": extractErr.MimeType,
			})
		case errors.As(err, &embedErr):
			respond.Error(c, http.StatusBadGateway, "embedding_failed", "embedding provider error", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, result)
}
