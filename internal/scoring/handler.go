package scoring

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the scorer.
type Handler struct {
	Scorer *Scorer
}

// NewHandler constructs a Handler.
func NewHandler(scorer *Scorer) *Handler {
	return &Handler{Scorer: scorer}
}

// RegisterRoutes attaches scoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
}

func (h *Handler) recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ProblemStatement) == "" && len(req.TechStack) == 0 {
		respond.Validation(c, "problemStatement or techStack is required")
		return
	}

	recs, err := h.Scorer.Recommend(c.Request.Context(), req.TechStack, req.ProblemStatement, req.MaxRecommendations)
	if err != nil {
		respond.Internal(c, "failed to build recommendations")
		return
	}

	respond.JSON(c, http.StatusOK, RecommendResponse{Recommendations: recs})
}
