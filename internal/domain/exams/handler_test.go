package exams

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/auth"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

type fakeRepo struct {
	sessions map[string]*ExamSession

	searchedUserID int64
}

func (f *fakeRepo) GetByIDForUser(_ context.Context, sessionID string, userID int64) (*ExamSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeRepo) Search(_ context.Context, filter SearchFilter, limit, offset int) ([]*ExamSession, int, error) {
	f.searchedUserID = filter.UserID
	var out []*ExamSession
	for _, s := range f.sessions {
		if s.UserID == filter.UserID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func newTestHandler(repo Repository) *Handler {
	return NewHandler(NewService(repo))
}

func doRequest(t *testing.T, h echo.HandlerFunc, target string, callerID int64, paramName, paramValue string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	auth.SetPrincipal(c, auth.Principal{UserID: callerID})

	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestGetObservation_OwnSession(t *testing.T) {
	repo := &fakeRepo{sessions: map[string]*ExamSession{
		"sess-1": {ID: "sess-1", UserID: 15, Status: 1, StartAt: time.Now()},
	}}
	h := newTestHandler(repo)

	rec := doRequest(t, h.GetObservation, "/fhir/Observation/exam-score-sess-1", 15, "id", "exam-score-sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["id"] != "exam-score-sess-1" {
		t.Errorf("id = %v", body["id"])
	}
}

// A session owned by someone else reads as absent, not forbidden.
func TestGetObservation_OtherUsersSessionIs404(t *testing.T) {
	repo := &fakeRepo{sessions: map[string]*ExamSession{
		"sess-1": {ID: "sess-1", UserID: 99, Status: 1, StartAt: time.Now()},
	}}
	h := newTestHandler(repo)

	rec := doRequest(t, h.GetObservation, "/fhir/Observation/exam-score-sess-1", 15, "id", "exam-score-sess-1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var outcome fhir.OperationOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("unmarshal outcome: %v", err)
	}
	if outcome.ResourceType != "OperationOutcome" || outcome.Issue[0].Code != "not-found" {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestGetObservation_BadPrefix(t *testing.T) {
	h := newTestHandler(&fakeRepo{})
	rec := doRequest(t, h.GetObservation, "/fhir/Observation/lecture-1", 15, "id", "lecture-1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 on unknown prefix", rec.Code)
	}
}

func TestSearchObservations_SubjectFallsBackToCaller(t *testing.T) {
	repo := &fakeRepo{sessions: map[string]*ExamSession{}}
	h := newTestHandler(repo)

	doRequest(t, h.SearchObservations, "/fhir/Observation?subject=garbage", 15, "", "")
	if repo.searchedUserID != 15 {
		t.Errorf("searched user = %d, want caller 15 on malformed subject", repo.searchedUserID)
	}
}

func TestSearchObservations_CrossUserSubjectHonored(t *testing.T) {
	repo := &fakeRepo{sessions: map[string]*ExamSession{}}
	h := newTestHandler(repo)

	doRequest(t, h.SearchObservations, "/fhir/Observation?subject=Patient/99", 15, "", "")
	if repo.searchedUserID != 99 {
		t.Errorf("searched user = %d, want 99 honored without an authorization check", repo.searchedUserID)
	}
}

func TestSearchEncounters_BundleShape(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{sessions: map[string]*ExamSession{
		"sess-1": {ID: "sess-1", UserID: 15, Status: 0, Mode: 1, StartAt: start},
	}}
	h := newTestHandler(repo)

	rec := doRequest(t, h.SearchEncounters, "/fhir/Encounter", 15, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var bundle fhir.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("unmarshal bundle: %v", err)
	}
	if bundle.Type != "searchset" || *bundle.Total != 1 {
		t.Errorf("bundle type %v total %v", bundle.Type, *bundle.Total)
	}
	if bundle.Entry[0].FullURL != "Encounter/sess-1" {
		t.Errorf("fullUrl = %v", bundle.Entry[0].FullURL)
	}
}
