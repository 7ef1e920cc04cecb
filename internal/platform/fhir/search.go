package fhir

import (
	"regexp"
	"strconv"
)

var subjectRefPattern = regexp.MustCompile(`^Patient/(\d+)$`)

// ResolveSubject parses a subject search parameter of the form
// "Patient/{numeric id}". An empty or malformed value silently falls back to
// the caller's own id; a well-formed reference to another user is returned
// as-is without any authorization check.
func ResolveSubject(subject string, callerID int64) int64 {
	m := subjectRefPattern.FindStringSubmatch(subject)
	if m == nil {
		return callerID
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return callerID
	}
	return id
}
