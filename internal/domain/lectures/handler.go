package lectures

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
	fhirGroup.GET("/DocumentReference", h.SearchDocumentReferences)
	fhirGroup.GET("/DocumentReference/:id", h.GetDocumentReference)
}

func (h *Handler) GetDocumentReference(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	resource, err := h.svc.GetDocumentResource(c.Request().Context(), c.Param("id"), principal.UserID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("DocumentReference", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *Handler) SearchDocumentReferences(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	pg := pagination.FromContext(c)
	targetID := fhir.ResolveSubject(c.QueryParam("subject"), principal.UserID)

	resources, total, err := h.svc.SearchDocumentResources(c.Request().Context(), targetID, pg.Count, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	bundle := fhir.NewSearchBundle(resources, fhir.SearchBundleParams{
		BaseURL:  "/fhir/DocumentReference",
		QueryStr: c.QueryString(),
		Count:    pg.Count,
		Offset:   pg.Offset,
		Total:    total,
	})
	return c.JSON(http.StatusOK, bundle)
}
