package identity

import (
	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// Account is a platform user account as stored by the identity service.
// Status 1 means the account is active; anything else is disabled.
type Account struct {
	ID             int64
	Phone          *string
	Email          *string
	Username       *string
	AvatarURL      *string
	InviteCode     *string
	CurrentLevelID *int64
	Status         int16
}

const (
	professionExtURL    = fhir.ExtensionURLBase + "/profession"
	accountStatusExtURL = fhir.ExtensionURLBase + "/account-status"
)

// ToFHIR projects the account as a FHIR Patient. The identifier order is
// fixed: user id first, then phone, email, and invite code when present.
func (a *Account) ToFHIR() map[string]interface{} {
	patient := map[string]interface{}{
		"resourceType": "Patient",
		"id":           fhir.PatientID(a.ID),
	}

	identifiers := []fhir.Identifier{
		{System: fhir.IdentifierSystemUserID, Value: fhir.PatientID(a.ID)},
	}
	if a.Phone != nil {
		identifiers = append(identifiers, fhir.Identifier{System: fhir.IdentifierSystemPhone, Value: *a.Phone})
	}
	if a.Email != nil {
		identifiers = append(identifiers, fhir.Identifier{System: fhir.IdentifierSystemEmail, Value: *a.Email})
	}
	if a.InviteCode != nil {
		identifiers = append(identifiers, fhir.Identifier{System: fhir.IdentifierSystemInviteCode, Value: *a.InviteCode})
	}
	patient["identifier"] = identifiers

	if a.Username != nil {
		patient["name"] = []fhir.HumanName{{Use: "usual", Text: *a.Username}}
	}

	var telecom []fhir.ContactPoint
	if a.Phone != nil {
		telecom = append(telecom, fhir.ContactPoint{System: "phone", Value: *a.Phone, Use: "mobile"})
	}
	if a.Email != nil {
		telecom = append(telecom, fhir.ContactPoint{System: "email", Value: *a.Email, Use: "home"})
	}
	if telecom != nil {
		patient["telecom"] = telecom
	}

	if a.AvatarURL != nil {
		patient["photo"] = []fhir.Attachment{{ContentType: "image/jpeg", URL: *a.AvatarURL}}
	}

	var extensions []fhir.Extension
	if profession := fhir.NewExtensionBuilder(professionExtURL).
		IntegerOpt("level-id", a.CurrentLevelID).
		Build(); profession != nil {
		extensions = append(extensions, *profession)
	}

	status := "disabled"
	if a.Status == 1 {
		status = "active"
	}
	extensions = append(extensions, fhir.Extension{URL: accountStatusExtURL, ValueString: &status})
	patient["extension"] = extensions

	return patient
}
