package exams

import (
	"reflect"
	"testing"
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

func ptrIntVal(n int) *int           { return &n }
func ptrTime(t time.Time) *time.Time { return &t }

func submittedSession(score int) *ExamSession {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	submit := start.Add(95 * time.Minute)
	return &ExamSession{
		ID:          "sess-001",
		UserID:      15,
		PaperID:     4,
		Status:      1,
		Mode:        2,
		Score:       ptrIntVal(score),
		StartAt:     start,
		SubmitAt:    ptrTime(submit),
		TimeLimit:   120,
		PaperName:   "2025 Mock Paper 1",
		SubjectName: "Internal Medicine",
	}
}

// ---------------------------------------------------------------------------
// ToObservationFHIR
// ---------------------------------------------------------------------------

func TestToObservation_Submitted(t *testing.T) {
	result := submittedSession(85).ToObservationFHIR()

	if result["resourceType"] != "Observation" {
		t.Errorf("resourceType = %v", result["resourceType"])
	}
	if result["id"] != "exam-score-sess-001" {
		t.Errorf("id = %v, want exam-score-sess-001", result["id"])
	}
	if result["status"] != "final" {
		t.Errorf("status = %v, want final", result["status"])
	}

	code := result["code"].(fhir.CodeableConcept)
	if code.Text != "Internal Medicine 2025 Mock Paper 1" {
		t.Errorf("code.Text = %q", code.Text)
	}

	subj := result["subject"].(fhir.Reference)
	if subj.Reference != "Patient/15" {
		t.Errorf("subject = %v, want Patient/15", subj.Reference)
	}
	enc := result["encounter"].(fhir.Reference)
	if enc.Reference != "Encounter/sess-001" {
		t.Errorf("encounter = %v, want Encounter/sess-001", enc.Reference)
	}

	if result["valueInteger"] != 85 {
		t.Errorf("valueInteger = %v, want 85", result["valueInteger"])
	}
	if result["effectiveDateTime"] != "2025-03-01T10:35:00Z" {
		t.Errorf("effectiveDateTime = %v", result["effectiveDateTime"])
	}
}

func TestToObservation_InProgressOmitsScoreFields(t *testing.T) {
	s := submittedSession(0)
	s.Status = 0
	s.Score = nil
	s.SubmitAt = nil

	result := s.ToObservationFHIR()
	if result["status"] != "preliminary" {
		t.Errorf("status = %v, want preliminary", result["status"])
	}
	for _, key := range []string{"valueInteger", "interpretation", "effectiveDateTime"} {
		if _, present := result[key]; present {
			t.Errorf("%s present, want omitted without a score", key)
		}
	}
}

func TestInterpretationBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "HH"}, {90, "HH"},
		{89, "H"}, {80, "H"},
		{79, "N"}, {60, "N"},
		{59, "L"}, {0, "L"},
	}

	for _, tc := range cases {
		result := submittedSession(tc.score).ToObservationFHIR()
		interp := result["interpretation"].([]fhir.CodeableConcept)
		if got := interp[0].Coding[0].Code; got != tc.want {
			t.Errorf("score %d: interpretation = %v, want %v", tc.score, got, tc.want)
		}
	}
}

// Both projections of an unchanged session are identical across calls.
func TestProjectionsStable(t *testing.T) {
	s := submittedSession(85)
	if !reflect.DeepEqual(s.ToObservationFHIR(), s.ToObservationFHIR()) {
		t.Error("ToObservationFHIR differs across calls on an unchanged session")
	}
	if !reflect.DeepEqual(s.ToEncounterFHIR(), s.ToEncounterFHIR()) {
		t.Error("ToEncounterFHIR differs across calls on an unchanged session")
	}
}

func TestToObservation_PartialJoinDegrades(t *testing.T) {
	s := submittedSession(70)
	s.PaperName = ""
	s.SubjectName = ""

	code := s.ToObservationFHIR()["code"].(fhir.CodeableConcept)
	if code.Text != "" {
		t.Errorf("code.Text = %q, want empty on partial join", code.Text)
	}
}

// ---------------------------------------------------------------------------
// ToEncounterFHIR
// ---------------------------------------------------------------------------

func TestToEncounter_Submitted(t *testing.T) {
	result := submittedSession(85).ToEncounterFHIR()

	if result["id"] != "sess-001" {
		t.Errorf("id = %v, want session id verbatim", result["id"])
	}
	if result["status"] != "finished" {
		t.Errorf("status = %v, want finished", result["status"])
	}

	class := result["class"].(fhir.Coding)
	if class.Code != "VR" {
		t.Errorf("class = %v, want VR", class.Code)
	}

	period := result["period"].(map[string]interface{})
	if period["start"] != "2025-03-01T09:00:00Z" {
		t.Errorf("period.start = %v", period["start"])
	}
	if period["end"] != "2025-03-01T10:35:00Z" {
		t.Errorf("period.end = %v", period["end"])
	}

	length := result["length"].(fhir.Quantity)
	if length.Value != 95*60 {
		t.Errorf("length = %d, want %d seconds", length.Value, 95*60)
	}
	if length.Code != "s" {
		t.Errorf("length.Code = %v, want s", length.Code)
	}
}

func TestToEncounter_InProgressOmitsEnd(t *testing.T) {
	s := submittedSession(0)
	s.Status = 0
	s.Score = nil
	s.SubmitAt = nil

	result := s.ToEncounterFHIR()
	if result["status"] != "in-progress" {
		t.Errorf("status = %v, want in-progress", result["status"])
	}

	period := result["period"].(map[string]interface{})
	if _, present := period["end"]; present {
		t.Error("period.end present, want key omitted when submitAt absent")
	}
	if _, present := result["length"]; present {
		t.Error("length present, want omitted when submitAt absent")
	}
}

func TestToEncounter_ModeExtensionAlways(t *testing.T) {
	s := submittedSession(85)
	s.SubmitAt = nil

	exts := s.ToEncounterFHIR()["extension"].([]fhir.Extension)
	if len(exts) != 1 || exts[0].URL != examSessionExtURL {
		t.Fatalf("extension = %v, want single exam-session extension", exts)
	}
	children := exts[0].Extension
	if len(children) != 2 {
		t.Fatalf("children = %d, want mode and time-limit", len(children))
	}
	if children[0].URL != "mode" || *children[0].ValueInteger != 2 {
		t.Errorf("mode child = %+v", children[0])
	}
	if children[1].URL != "time-limit" || *children[1].ValueInteger != 120 {
		t.Errorf("time-limit child = %+v", children[1])
	}
}
