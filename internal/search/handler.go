package search

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the search service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches search routes to the per-position group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

func (h *Handler) search(c *gin.Context) {
	positionID := strings.TrimSpace(c.Param("positionId"))
	if positionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "positionId is required", nil)
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query is required", nil)
		return
	}
	if req.TopK < 0 || req.TopK > 100 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "topK must be between 0 and 100", nil)
		return
	}

	matches, err := h.Svc.Search(c.Request.Context(), positionID, req.Query, req.TopK)
	if err != nil {
		var embedErr *llm.EmbeddingError
		switch {
		case errors.As(err, &embedErr):
			respond.Error(c, http.StatusBadGateway, "embedding_failed", "embedding provider error", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		}
		return
	}

	respond.OK(c, gin.H{"matches": matches})
}
