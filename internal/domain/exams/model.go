package exams

import (
	"strings"
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// ExamSession is one user's run through an exam paper. A single session
// projects into two FHIR resources: an Observation carrying the score and an
// Encounter carrying the sitting itself.
type ExamSession struct {
	ID        string
	UserID    int64
	PaperID   int64
	Status    int16 // 0 = in progress, 1 = submitted
	Mode      int16 // 1 = practice, 2 = mock exam
	Score     *int
	StartAt   time.Time
	SubmitAt  *time.Time
	TimeLimit int // minutes

	// Joined via papers/subjects; empty string when the join graph is partial.
	PaperName   string
	SubjectName string
}

const examSessionExtURL = fhir.ExtensionURLBase + "/exam-session"

func (s *ExamSession) submitted() bool {
	return s.Status == 1
}

// interpretationCode buckets the raw 0-100 score into HL7
// v3-ObservationInterpretation codes.
func interpretationCode(score int) (code, display string) {
	switch {
	case score >= 90:
		return "HH", "Excellent"
	case score >= 80:
		return "H", "Good"
	case score >= 60:
		return "N", "Pass"
	default:
		return "L", "Fail"
	}
}

// ToObservationFHIR projects the session's score as a FHIR Observation.
func (s *ExamSession) ToObservationFHIR() map[string]interface{} {
	status := "preliminary"
	if s.submitted() {
		status = "final"
	}

	obs := map[string]interface{}{
		"resourceType": "Observation",
		"id":           fhir.ObservationID(s.ID),
		"status":       status,
		"code": fhir.CodeableConcept{
			Text: strings.TrimSpace(s.SubjectName + " " + s.PaperName),
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", fhir.PatientID(s.UserID)),
		},
		"encounter": fhir.Reference{
			Reference: fhir.FormatReference("Encounter", s.ID),
		},
	}

	if s.Score != nil {
		obs["valueInteger"] = *s.Score

		code, display := interpretationCode(*s.Score)
		obs["interpretation"] = []fhir.CodeableConcept{
			{
				Coding: []fhir.Coding{
					{
						System:  "http://terminology.hl7.org/CodeSystem/v3-ObservationInterpretation",
						Code:    code,
						Display: display,
					},
				},
			},
		}
	}

	if s.SubmitAt != nil {
		obs["effectiveDateTime"] = s.SubmitAt.UTC().Format(time.RFC3339)
	}

	return obs
}

// ToEncounterFHIR projects the session itself as a FHIR Encounter. The
// Encounter id is the session id verbatim.
func (s *ExamSession) ToEncounterFHIR() map[string]interface{} {
	status := "in-progress"
	if s.submitted() {
		status = "finished"
	}

	enc := map[string]interface{}{
		"resourceType": "Encounter",
		"id":           s.ID,
		"status":       status,
		"class": fhir.Coding{
			System:  "http://terminology.hl7.org/CodeSystem/v3-ActCode",
			Code:    "VR",
			Display: "virtual",
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", fhir.PatientID(s.UserID)),
		},
	}

	// period.end is omitted entirely when the session has not been submitted;
	// a key carrying no value does not survive JSON encoding.
	period := map[string]interface{}{
		"start": s.StartAt.UTC().Format(time.RFC3339),
	}
	if s.SubmitAt != nil {
		period["end"] = s.SubmitAt.UTC().Format(time.RFC3339)
	}
	enc["period"] = period

	if s.SubmitAt != nil {
		enc["length"] = fhir.Quantity{
			Value:  int64(s.SubmitAt.Sub(s.StartAt) / time.Second),
			Unit:   "s",
			System: "http://unitsofmeasure.org",
			Code:   "s",
		}
	}

	if ext := fhir.NewExtensionBuilder(examSessionExtURL).
		Integer("mode", int64(s.Mode)).
		Integer("time-limit", int64(s.TimeLimit)).
		Build(); ext != nil {
		enc["extension"] = []fhir.Extension{*ext}
	}

	return enc
}
