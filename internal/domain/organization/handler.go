package organization

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(fhirGroup *echo.Group) {
	fhirGroup.GET("/Organization/:id", h.GetOrganization)
}

// GetOrganization serves the static platform Organization. Any id other than
// the fixed one is a 404.
func (h *Handler) GetOrganization(c echo.Context) error {
	if c.Param("id") != fhir.OrganizationID {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Organization", c.Param("id")))
	}
	return c.JSON(http.StatusOK, PlatformResource())
}
