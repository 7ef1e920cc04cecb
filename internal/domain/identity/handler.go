package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

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
	fhirGroup.GET("/Patient", h.SearchPatients)
	fhirGroup.GET("/Patient/:id", h.GetPatient)
}

func (h *Handler) GetPatient(c echo.Context) error {
	userID, err := fhir.DecodePatientID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", c.Param("id")))
	}

	account, err := h.svc.GetAccount(c.Request().Context(), userID)
	if err != nil {
		if fhir.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, account.ToFHIR())
}

func (h *Handler) SearchPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := SearchFilter{Identifier: c.QueryParam("identifier")}

	accounts, total, err := h.svc.SearchAccounts(c.Request().Context(), filter, pg.Count, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	resources := make([]map[string]interface{}, len(accounts))
	for i, a := range accounts {
		resources[i] = a.ToFHIR()
	}
	bundle := fhir.NewSearchBundle(resources, fhir.SearchBundleParams{
		BaseURL:  "/fhir/Patient",
		QueryStr: c.QueryString(),
		Count:    pg.Count,
		Offset:   pg.Offset,
		Total:    total,
	})
	return c.JSON(http.StatusOK, bundle)
}
