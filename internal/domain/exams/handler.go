package exams

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
	fhirGroup.GET("/Observation", h.SearchObservations)
	fhirGroup.GET("/Observation/:id", h.GetObservation)
	fhirGroup.GET("/Encounter", h.SearchEncounters)
	fhirGroup.GET("/Encounter/:id", h.GetEncounter)
}

func (h *Handler) GetObservation(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	session, err := h.svc.GetSessionAsObservation(c.Request().Context(), c.Param("id"), principal.UserID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Observation", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, session.ToObservationFHIR())
}

func (h *Handler) GetEncounter(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	session, err := h.svc.GetSessionAsEncounter(c.Request().Context(), c.Param("id"), principal.UserID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Encounter", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, session.ToEncounterFHIR())
}

func (h *Handler) SearchObservations(c echo.Context) error {
	return h.searchSessions(c, "/fhir/Observation", (*ExamSession).ToObservationFHIR)
}

func (h *Handler) SearchEncounters(c echo.Context) error {
	return h.searchSessions(c, "/fhir/Encounter", (*ExamSession).ToEncounterFHIR)
}

func (h *Handler) searchSessions(c echo.Context, basePath string, project func(*ExamSession) map[string]interface{}) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing caller identity"))
	}

	pg := pagination.FromContext(c)
	filter := SearchFilter{UserID: fhir.ResolveSubject(c.QueryParam("subject"), principal.UserID)}

	sessions, total, err := h.svc.SearchSessions(c.Request().Context(), filter, pg.Count, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	resources := make([]map[string]interface{}, len(sessions))
	for i, s := range sessions {
		resources[i] = project(s)
	}
	bundle := fhir.NewSearchBundle(resources, fhir.SearchBundleParams{
		BaseURL:  basePath,
		QueryStr: c.QueryString(),
		Count:    pg.Count,
		Offset:   pg.Offset,
		Total:    total,
	})
	return c.JSON(http.StatusOK, bundle)
}
