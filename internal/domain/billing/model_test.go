package billing

import (
	"reflect"
	"testing"
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

func sampleSub() *Subscription {
	return &Subscription{
		ID:       3,
		UserID:   15,
		LevelID:  2,
		StartAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpireAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSubscription_ToFHIR(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	result := sampleSub().ToFHIR(now)

	if result["resourceType"] != "Coverage" {
		t.Errorf("resourceType = %v", result["resourceType"])
	}
	if result["id"] != "subscription-3" {
		t.Errorf("id = %v, want subscription-3", result["id"])
	}
	if result["status"] != "active" {
		t.Errorf("status = %v, want active before expiry", result["status"])
	}

	beneficiary := result["beneficiary"].(fhir.Reference)
	if beneficiary.Reference != "Patient/15" {
		t.Errorf("beneficiary = %v", beneficiary.Reference)
	}

	// type and period are unconditional
	if _, present := result["type"]; !present {
		t.Error("type missing, want always emitted")
	}
	period := result["period"].(map[string]interface{})
	if period["start"] != "2025-01-01T00:00:00Z" || period["end"] != "2025-07-01T00:00:00Z" {
		t.Errorf("period = %v", period)
	}

	exts := result["extension"].([]fhir.Extension)
	if *exts[0].Extension[0].ValueInteger != 2 {
		t.Errorf("level-id = %d, want 2", *exts[0].Extension[0].ValueInteger)
	}
}

// The projection depends only on the row and the supplied clock.
func TestSubscription_ToFHIR_Stable(t *testing.T) {
	sub := sampleSub()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !reflect.DeepEqual(sub.ToFHIR(now), sub.ToFHIR(now)) {
		t.Error("ToFHIR differs across calls with an unchanged row and clock")
	}
}

// Status is derived per call: the same row reads active before expiry and
// cancelled after, with no write in between.
func TestSubscription_StatusFlipsAtExpiry(t *testing.T) {
	sub := sampleSub()

	before := sub.ToFHIR(sub.ExpireAt.Add(-time.Second))
	if before["status"] != "active" {
		t.Errorf("status before expiry = %v, want active", before["status"])
	}

	at := sub.ToFHIR(sub.ExpireAt)
	if at["status"] != "cancelled" {
		t.Errorf("status at expiry instant = %v, want cancelled", at["status"])
	}

	after := sub.ToFHIR(sub.ExpireAt.Add(time.Second))
	if after["status"] != "cancelled" {
		t.Errorf("status after expiry = %v, want cancelled", after["status"])
	}
}
