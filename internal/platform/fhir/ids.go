package fhir

import (
	"strconv"
	"strings"
)

// Fixed logical id of the platform Organization resource.
const OrganizationID = "medicalbible-platform"

// Resource id prefixes. Exposed ids are built by prepending the prefix to the
// underlying entity id; decoding strips it again. The mapping is total and
// stable: identical entity ids always yield identical resource ids.
const (
	ObservationIDPrefix       = "exam-score-"
	ConditionIDPrefix         = "wrong-question-"
	DocumentReferenceIDPrefix = "lecture-"
	CoverageIDPrefix          = "subscription-"
)

func ObservationID(sessionID string) string {
	return ObservationIDPrefix + sessionID
}

func ConditionID(id int64) string {
	return ConditionIDPrefix + strconv.FormatInt(id, 10)
}

func DocumentReferenceID(id int64) string {
	return DocumentReferenceIDPrefix + strconv.FormatInt(id, 10)
}

func CoverageID(id int64) string {
	return CoverageIDPrefix + strconv.FormatInt(id, 10)
}

func PatientID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// DecodePatientID parses a Patient logical id into a numeric account id.
func DecodePatientID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, NewNotFound("Patient", id)
	}
	return n, nil
}

// DecodeObservationID strips the exam-score prefix and returns the opaque
// session id.
func DecodeObservationID(id string) (string, error) {
	sessionID, ok := strings.CutPrefix(id, ObservationIDPrefix)
	if !ok || sessionID == "" {
		return "", NewNotFound("Observation", id)
	}
	return sessionID, nil
}

// DecodeEncounterID validates an Encounter logical id. Encounter ids carry
// the session id verbatim, so this only rejects the empty string.
func DecodeEncounterID(id string) (string, error) {
	if id == "" {
		return "", NewNotFound("Encounter", id)
	}
	return id, nil
}

func DecodeConditionID(id string) (int64, error) {
	return decodeNumericSuffix("Condition", ConditionIDPrefix, id)
}

func DecodeDocumentReferenceID(id string) (int64, error) {
	return decodeNumericSuffix("DocumentReference", DocumentReferenceIDPrefix, id)
}

func DecodeCoverageID(id string) (int64, error) {
	return decodeNumericSuffix("Coverage", CoverageIDPrefix, id)
}

func decodeNumericSuffix(resource, prefix, id string) (int64, error) {
	suffix, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, NewNotFound(resource, id)
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, NewNotFound(resource, id)
	}
	return n, nil
}
