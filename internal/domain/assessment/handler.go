package assessment

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nutritionsays/nutrition/pkg/pagination"
)

// maxCatalogUploadBytes bounds catalog upload size.
const maxCatalogUploadBytes = 5 << 20

// Handler exposes the assessment engine over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates an assessment HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the assessment and catalog endpoints on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.CreateAssessment)
	api.GET("/assessments", h.ListAssessments)
	api.GET("/assessments/:id", h.GetAssessment)
	api.DELETE("/assessments/:id", h.DeleteAssessment)
	api.GET("/assessments/:id/fhir/nutrition-order", h.GetFHIRNutritionOrder)
	api.GET("/assessments/:id/fhir/nutrition-intake", h.GetFHIRNutritionIntake)

	api.GET("/exchange-catalog", h.GetCatalog)
	api.POST("/exchange-catalog", h.UploadCatalog)
	api.DELETE("/exchange-catalog", h.ResetCatalog)

	api.GET("/reference/factors", h.GetFactors)
}

// CreateAssessment handles POST /assessments.
func (h *Handler) CreateAssessment(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.Evaluate(c.Request().Context(), &in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

// ListAssessments handles GET /assessments.
func (h *Handler) ListAssessments(c echo.Context) error {
	p := pagination.FromContext(c)

	items, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list assessments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

// GetAssessment handles GET /assessments/:id.
func (h *Handler) GetAssessment(c echo.Context) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAssessment handles DELETE /assessments/:id.
func (h *Handler) DeleteAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete assessment")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFHIRNutritionOrder handles GET /assessments/:id/fhir/nutrition-order.
func (h *Handler) GetFHIRNutritionOrder(c echo.Context) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a.ToFHIRNutritionOrder())
}

// GetFHIRNutritionIntake handles GET /assessments/:id/fhir/nutrition-intake.
func (h *Handler) GetFHIRNutritionIntake(c echo.Context) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a.ToFHIRNutritionIntake())
}

// GetCatalog handles GET /exchange-catalog.
func (h *Handler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"groups":        h.svc.CatalogSnapshot(),
		"group_order":   GroupOrder,
		"substitutions": DefaultSubstitutions(),
	})
}

// UploadCatalog handles POST /exchange-catalog: a multipart upload with a
// "file" part holding an XLSX or CSV catalog.
func (h *Handler) UploadCatalog(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}
	if fh.Size > maxCatalogUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "catalog file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxCatalogUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file upload")
	}

	cat, err := h.svc.ApplyCatalogUpload(fh.Filename, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"groups":      cat,
		"group_order": GroupOrder,
	})
}

// ResetCatalog handles DELETE /exchange-catalog.
func (h *Handler) ResetCatalog(c echo.Context) error {
	h.svc.ResetCatalog()
	return c.NoContent(http.StatusNoContent)
}

// GetFactors handles GET /reference/factors: the named multiplier catalogs
// clients can render as selection lists.
func (h *Handler) GetFactors(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"pal":               PALFactors,
		"facility_activity": FacilityActivityFactors,
		"stress":            StressFactors,
		"malnutrition":      MalnutritionFactors,
	})
}

func (h *Handler) lookup(c echo.Context) (*Assessment, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	a, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "assessment not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load assessment")
	}
	return a, nil
}
