package feasibility

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the evaluator.
type Handler struct {
	Evaluator *Evaluator
}

// NewHandler constructs a Handler.
func NewHandler(evaluator *Evaluator) *Handler {
	return &Handler{Evaluator: evaluator}
}

// RegisterRoutes attaches feasibility routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feasibility", h.evaluate)
	rg.POST("/feasibility/quick-check", h.quickCheck)
}

func (h *Handler) evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}

	res, err := h.Evaluator.Evaluate(c.Request.Context(), req.ProblemStatement, req.TechStack, req.AllowedDocuments)
	if err != nil {
		respond.Internal(c, "failed to evaluate feasibility")
		return
	}

	c.Set("verdict", string(res.Verdict))
	respond.JSON(c, http.StatusOK, res)
}

func (h *Handler) quickCheck(c *gin.Context) {
	var req QuickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}

	res, err := h.Evaluator.QuickCheck(c.Request.Context(), req.ProblemStatement)
	if err != nil {
		respond.Internal(c, "failed to run quick check")
		return
	}

	c.Set("verdict", string(res.Verdict))
	respond.JSON(c, http.StatusOK, res)
}
