package wrongbook

import (
	"fmt"
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// Entry is one question a user got wrong, with repetition bookkeeping.
type Entry struct {
	ID          int64
	UserID      int64
	QuestionID  int64
	WrongCount  int
	LastWrongAt time.Time
	IsDeleted   int16
}

const wrongBookExtURL = fhir.ExtensionURLBase + "/wrong-book"

// ToFHIR projects the entry as a FHIR Condition. The clinical and
// verification statuses are fixed constants; a soft-deleted entry still
// reads as active, with isDeleted only visible inside the extension.
func (e *Entry) ToFHIR() map[string]interface{} {
	condition := map[string]interface{}{
		"resourceType": "Condition",
		"id":           fhir.ConditionID(e.ID),
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{
				{
					System: "http://terminology.hl7.org/CodeSystem/condition-clinical",
					Code:   "active",
				},
			},
		},
		"verificationStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{
				{
					System: "http://terminology.hl7.org/CodeSystem/condition-ver-status",
					Code:   "confirmed",
				},
			},
		},
		"code": fhir.CodeableConcept{
			Text: fmt.Sprintf("Wrong answer on question %d", e.QuestionID),
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", fhir.PatientID(e.UserID)),
		},
		"recordedDate": e.LastWrongAt.UTC().Format(time.RFC3339),
	}

	deleted := e.IsDeleted != 0
	if ext := fhir.NewExtensionBuilder(wrongBookExtURL).
		Integer("wrong-count", int64(e.WrongCount)).
		Integer("question-id", e.QuestionID).
		Boolean("is-deleted", deleted).
		Build(); ext != nil {
		condition["extension"] = []fhir.Extension{*ext}
	}

	return condition
}
