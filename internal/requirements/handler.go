package requirements

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// Handler exposes requirement extraction over HTTP.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requirements/extract", h.extract)
}

func (h *Handler) extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}

	// A blank statement is valid input and yields an empty list.
	respond.JSON(c, http.StatusOK, ExtractResponse{Requirements: Extract(req.ProblemStatement)})
}
