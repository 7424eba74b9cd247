package knowledge

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/extract"
	"github.com/thesminc/POCkit-sub000/internal/shared/server/middleware"
	"github.com/thesminc/POCkit-sub000/internal/shared/server/respond"
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

// RegisterRoutes attaches knowledge-base routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.PATCH("/documents/:id/maturity", h.setMaturity)
}

func (h *Handler) upload(c *gin.Context) {
	ownerKey := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Validation(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Validation(c, "unable to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Validation(c, "unable to read file")
		return
	}

	doc, err := h.Svc.Ingest(c.Request.Context(), ownerKey, IngestInput{
		FileName: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate_document", "document already ingested", gin.H{"documentId": doc.ID})
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Validation(c, err.Error())
		case errors.Is(err, ErrNoText), errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error())
		default:
			respond.Internal(c, "failed to ingest document")
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc, false))
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc, false))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error())
		default:
			respond.Internal(c, "failed to fetch document")
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusOK, toResponse(doc, true))
}

func (h *Handler) setMaturity(c *gin.Context) {
	var req setMaturityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "invalid request body")
		return
	}

	id := c.Param("id")
	if err := h.Svc.SetMaturityTier(c.Request.Context(), id, req.MaturityTier); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Validation(c, err.Error())
		default:
			respond.Internal(c, "failed to update maturity tier")
		}
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Internal(c, "failed to fetch document")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc, false))
}
