package capability

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the index.
type Handler struct {
	Index *Index
}

// NewHandler constructs a Handler.
func NewHandler(index *Index) *Handler {
	return &Handler{Index: index}
}

// RegisterRoutes attaches capability routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/capabilities/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}

	hasKeyword := false
	for _, kw := range req.Keywords {
		if strings.TrimSpace(kw) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		respond.Validation(c, "at least one keyword is required")
		return
	}

	caps, err := h.Index.Search(c.Request.Context(), req.Keywords, SearchOptions{
		MaxResults:  req.MaxResults,
		DocumentIDs: req.DocumentIDs,
	})
	if err != nil {
		respond.Internal(c, "failed to search capabilities")
		return
	}

	respond.JSON(c, http.StatusOK, SearchResponse{Capabilities: caps})
}
