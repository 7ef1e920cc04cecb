package lectures

import (
	"time"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// Document is one lecture handout within a subject.
type Document struct {
	ID        int64
	SubjectID int64
	Title     string
	FileURL   *string
	PageCount int
	SortOrder int

	// Joined from subjects; empty string when the join graph is partial.
	SubjectName string
}

// ReadingProgress is a user's bookmark in one lecture.
type ReadingProgress struct {
	UserID     int64
	LectureID  int64
	LastPage   int
	LastReadAt time.Time
}

const (
	lectureInfoExtURL     = fhir.ExtensionURLBase + "/lecture-info"
	readingProgressExtURL = fhir.ExtensionURLBase + "/reading-progress"
)

// ToFHIR projects the lecture as a FHIR DocumentReference for the given
// reader. This is the pure base transform; reading progress is appended
// separately by the service when a bookmark exists.
func (d *Document) ToFHIR(readerID int64) map[string]interface{} {
	attachment := fhir.Attachment{
		ContentType: "application/pdf",
		Title:       d.Title,
	}
	if d.FileURL != nil {
		attachment.URL = *d.FileURL
	}

	doc := map[string]interface{}{
		"resourceType": "DocumentReference",
		"id":           fhir.DocumentReferenceID(d.ID),
		"status":       "current",
		"type": fhir.CodeableConcept{
			Text: d.SubjectName,
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", fhir.PatientID(readerID)),
		},
		"content": []map[string]interface{}{
			{"attachment": attachment},
		},
	}

	info := fhir.NewExtensionBuilder(lectureInfoExtURL).
		Integer("sort-order", int64(d.SortOrder))
	// A falsy page count means the page total is unknown, not zero pages.
	if d.PageCount > 0 {
		info.Integer("pages", int64(d.PageCount))
	}
	if ext := info.Build(); ext != nil {
		doc["extension"] = []fhir.Extension{*ext}
	}

	return doc
}

// AppendReadingProgress attaches the reader's bookmark to an already
// projected DocumentReference.
func AppendReadingProgress(doc map[string]interface{}, p *ReadingProgress) {
	ext := fhir.NewExtensionBuilder(readingProgressExtURL).
		Integer("last-page", int64(p.LastPage)).
		DateTime("last-read-at", p.LastReadAt.UTC().Format(time.RFC3339)).
		Build()
	if ext == nil {
		return
	}

	existing, _ := doc["extension"].([]fhir.Extension)
	doc["extension"] = append(existing, *ext)
}
