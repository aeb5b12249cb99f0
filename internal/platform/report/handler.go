package report

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nutritionsays/nutrition/internal/domain/assessment"
)

// AssessmentSource is the slice of the assessment service the report
// endpoints need.
type AssessmentSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error)
}

// Handler serves rendered notes for stored assessments.
type Handler struct {
	src AssessmentSource
}

func NewHandler(src AssessmentSource) *Handler {
	return &Handler{src: src}
}

// RegisterRoutes mounts the document endpoints on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/assessments/:id/document", h.GetDocument)
	api.GET("/assessments/:id/report.md", h.GetMarkdown)
}

// GetDocument handles GET /assessments/:id/document.
func (h *Handler) GetDocument(c echo.Context) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BuildDocument(a))
}

// GetMarkdown handles GET /assessments/:id/report.md.
func (h *Handler) GetMarkdown(c echo.Context) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(Markdown(a)))
}

func (h *Handler) lookup(c echo.Context) (*assessment.Assessment, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	a, err := h.src.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load assessment")
	}
	return a, nil
}
