package fhir

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// PatientResourceFetcher retrieves resources of one type belonging to a user.
type PatientResourceFetcher func(ctx context.Context, userID int64) ([]map[string]interface{}, error)

// EverythingHandler implements the FHIR Patient/$everything operation. It
// aggregates the Patient resource and every registered fetcher's output into
// a single collection Bundle. Fetchers run concurrently; any failure fails
// the whole operation.
type EverythingHandler struct {
	order          []string
	fetchers       map[string]PatientResourceFetcher
	caps           map[string]int
	patientFetcher func(ctx context.Context, userID int64) (map[string]interface{}, error)
}

func NewEverythingHandler() *EverythingHandler {
	return &EverythingHandler{
		fetchers: make(map[string]PatientResourceFetcher),
		caps:     make(map[string]int),
	}
}

// SetPatientFetcher sets the function used to retrieve the Patient resource itself.
func (h *EverythingHandler) SetPatientFetcher(fn func(ctx context.Context, userID int64) (map[string]interface{}, error)) {
	h.patientFetcher = fn
}

// RegisterFetcher registers a fetcher for the given FHIR resource type.
// Registration order determines the order of resources in the output Bundle.
// A positive cap limits how many resources of that type are included; zero
// means unlimited. Caps are fixed per type and independent of _count.
func (h *EverythingHandler) RegisterFetcher(resourceType string, cap int, fn PatientResourceFetcher) {
	if _, exists := h.fetchers[resourceType]; !exists {
		h.order = append(h.order, resourceType)
	}
	h.fetchers[resourceType] = fn
	h.caps[resourceType] = cap
}

// RegisterRoutes registers the $everything route on the FHIR group.
func (h *EverythingHandler) RegisterRoutes(fhirGroup *echo.Group) {
	fhirGroup.GET("/Patient/:id/$everything", h.Handle)
}

// Handle processes GET /fhir/Patient/:id/$everything.
func (h *EverythingHandler) Handle(c echo.Context) error {
	userID, err := DecodePatientID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, NotFoundOutcome("Patient", c.Param("id")))
	}

	g, ctx := errgroup.WithContext(c.Request().Context())

	var patient map[string]interface{}
	g.Go(func() error {
		var err error
		patient, err = h.patientFetcher(ctx, userID)
		return err
	})

	results := make([][]map[string]interface{}, len(h.order))
	for i, rt := range h.order {
		i, rt := i, rt
		fn := h.fetchers[rt]
		g.Go(func() error {
			resources, err := fn(ctx, userID)
			if err != nil {
				return err
			}
			if max := h.caps[rt]; max > 0 && len(resources) > max {
				resources = resources[:max]
			}
			results[i] = resources
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if IsNotFound(err) {
			return c.JSON(http.StatusNotFound, NotFoundOutcome("Patient", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, ErrorOutcome(err.Error()))
	}

	all := []map[string]interface{}{patient}
	for i := range h.order {
		all = append(all, results[i]...)
	}

	return c.JSON(http.StatusOK, NewCollectionBundle(all))
}
