package fhir

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncodeIDs(t *testing.T) {
	if got := ObservationID("abc-123"); got != "exam-score-abc-123" {
		t.Errorf("ObservationID = %v, want exam-score-abc-123", got)
	}
	if got := ConditionID(42); got != "wrong-question-42" {
		t.Errorf("ConditionID = %v, want wrong-question-42", got)
	}
	if got := DocumentReferenceID(7); got != "lecture-7" {
		t.Errorf("DocumentReferenceID = %v, want lecture-7", got)
	}
	if got := CoverageID(9001); got != "subscription-9001" {
		t.Errorf("CoverageID = %v, want subscription-9001", got)
	}
	if got := PatientID(15); got != "15" {
		t.Errorf("PatientID = %v, want 15", got)
	}
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecodeRoundTrip(t *testing.T) {
	sessionID, err := DecodeObservationID(ObservationID("sess-9"))
	if err != nil {
		t.Fatalf("DecodeObservationID: %v", err)
	}
	if sessionID != "sess-9" {
		t.Errorf("sessionID = %v, want sess-9", sessionID)
	}

	condID, err := DecodeConditionID(ConditionID(42))
	if err != nil {
		t.Fatalf("DecodeConditionID: %v", err)
	}
	if condID != 42 {
		t.Errorf("condID = %v, want 42", condID)
	}

	docID, err := DecodeDocumentReferenceID(DocumentReferenceID(7))
	if err != nil {
		t.Fatalf("DecodeDocumentReferenceID: %v", err)
	}
	if docID != 7 {
		t.Errorf("docID = %v, want 7", docID)
	}

	covID, err := DecodeCoverageID(CoverageID(9001))
	if err != nil {
		t.Fatalf("DecodeCoverageID: %v", err)
	}
	if covID != 9001 {
		t.Errorf("covID = %v, want 9001", covID)
	}

	userID, err := DecodePatientID("15")
	if err != nil {
		t.Fatalf("DecodePatientID: %v", err)
	}
	if userID != 15 {
		t.Errorf("userID = %v, want 15", userID)
	}
}

func TestDecodeFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"patient non-numeric", errOf(DecodePatientID("abc"))},
		{"observation wrong prefix", errOf(DecodeObservationID("wrong-question-1"))},
		{"observation empty suffix", errOf(DecodeObservationID("exam-score-"))},
		{"encounter empty", errOf(DecodeEncounterID(""))},
		{"condition wrong prefix", errOf(DecodeConditionID("lecture-1"))},
		{"condition non-numeric suffix", errOf(DecodeConditionID("wrong-question-x"))},
		{"document wrong prefix", errOf(DecodeDocumentReferenceID("subscription-1"))},
		{"coverage non-numeric suffix", errOf(DecodeCoverageID("subscription-abc"))},
	}

	for _, tc := range cases {
		if tc.err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !IsNotFound(tc.err) {
			t.Errorf("%s: error %v is not a NotFoundError", tc.name, tc.err)
		}
	}
}

func errOf[T any](_ T, err error) error { return err }

// ---------------------------------------------------------------------------
// NotFoundError
// ---------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("Observation", "exam-score-x")
	if err.Error() != "Observation/exam-score-x not found" {
		t.Errorf("Error() = %v", err.Error())
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false, want true")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true, want false")
	}
}
