package organization

import (
	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// PlatformResource is the one Organization this server knows: the platform
// itself. It is a constant projection; there is no backing table.
func PlatformResource() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Organization",
		"id":           fhir.OrganizationID,
		"active":       true,
		"name":         "MedicalBible Exam Preparation Platform",
		"telecom": []fhir.ContactPoint{
			{System: "url", Value: "https://www.medicalbible.com"},
		},
	}
}
