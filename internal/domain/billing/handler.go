package billing

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/auth"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
	"github.com/ichewm/MedicalBible-sub001/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(fhirGroup *echo.Group) {
	fhirGroup.GET("/Coverage", h.SearchCoverages)
	fhirGroup.GET("/Coverage/:id", h.GetCoverage)
}

func (h *Handler) GetCoverage(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	sub, err := h.svc.GetSubscription(c.Request().Context(), c.Param("id"), principal.UserID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Coverage", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, sub.ToFHIR(time.Now()))
}

func (h *Handler) SearchCoverages(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	pg := pagination.FromContext(c)
	subs, total, err := h.svc.ListSubscriptions(c.Request().Context(), principal.UserID, pg.Count, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	now := time.Now()
	resources := make([]map[string]interface{}, len(subs))
	for i, s := range subs {
		resources[i] = s.ToFHIR(now)
	}
	bundle := fhir.NewSearchBundle(resources, fhir.SearchBundleParams{
		BaseURL:  "/fhir/Coverage",
		QueryStr: c.QueryString(),
		Count:    pg.Count,
		Offset:   pg.Offset,
		Total:    total,
	})
	return c.JSON(http.StatusOK, bundle)
}
