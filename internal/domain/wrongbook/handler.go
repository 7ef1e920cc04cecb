package wrongbook

import (
	"net/http"

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
	fhirGroup.GET("/Condition", h.SearchConditions)
	fhirGroup.GET("/Condition/:id", h.GetCondition)
}

func (h *Handler) GetCondition(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	entry, err := h.svc.GetEntry(c.Request().Context(), c.Param("id"), principal.UserID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Condition", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, entry.ToFHIR())
}

func (h *Handler) SearchConditions(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	pg := pagination.FromContext(c)
	filter := SearchFilter{UserID: fhir.ResolveSubject(c.QueryParam("subject"), principal.UserID)}

	entries, total, err := h.svc.SearchEntries(c.Request().Context(), filter, pg.Count, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	resources := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		resources[i] = e.ToFHIR()
	}
	bundle := fhir.NewSearchBundle(resources, fhir.SearchBundleParams{
		BaseURL:  "/fhir/Condition",
		QueryStr: c.QueryString(),
		Count:    pg.Count,
		Offset:   pg.Offset,
		Total:    total,
	})
	return c.JSON(http.StatusOK, bundle)
}
