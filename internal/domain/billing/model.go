package billing

import (
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// Subscription grants a user access to one certification level for a period.
type Subscription struct {
	ID       int64
	UserID   int64
	LevelID  int64
	StartAt  time.Time
	ExpireAt time.Time
}

const subscriptionLevelExtURL = fhir.ExtensionURLBase + "/subscription-level"

// Active reports whether the subscription has not yet expired at the given
// instant.
func (s *Subscription) Active(now time.Time) bool {
	return s.ExpireAt.After(now)
}

// ToFHIR projects the subscription as a FHIR Coverage. The status is derived
// from expireAt against the supplied clock on every call; nothing is cached,
// so a Coverage read before and after expiry flips with no write.
func (s *Subscription) ToFHIR(now time.Time) map[string]interface{} {
	status := "cancelled"
	if s.Active(now) {
		status = "active"
	}

	coverage := map[string]interface{}{
		"resourceType": "Coverage",
		"id":           fhir.CoverageID(s.ID),
		"status":       status,
		"type": fhir.CodeableConcept{
			Text: "Exam preparation subscription",
		},
		"beneficiary": fhir.Reference{
			Reference: fhir.FormatReference("Patient", fhir.PatientID(s.UserID)),
		},
		"period": map[string]interface{}{
			"start": s.StartAt.UTC().Format(time.RFC3339),
			"end":   s.ExpireAt.UTC().Format(time.RFC3339),
		},
	}

	if ext := fhir.NewExtensionBuilder(subscriptionLevelExtURL).
		Integer("level-id", s.LevelID).
		Build(); ext != nil {
		coverage["extension"] = []fhir.Extension{*ext}
	}

	return coverage
}
