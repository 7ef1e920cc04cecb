package fhir

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ichewm/MedicalBible-sub001/pkg/pagination"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Search   *BundleSearch   `json:"search,omitempty"`
}

type BundleSearch struct {
	Mode string `json:"mode,omitempty"`
}

// SearchBundleParams holds pagination and link information for a search bundle.
type SearchBundleParams struct {
	BaseURL  string
	QueryStr string
	Count    int
	Offset   int
	Total    int
}

// NewSearchBundle creates a searchset Bundle. Entry order follows the
// resource slice; total is the full match count, not the page size.
func NewSearchBundle(resources []map[string]interface{}, params SearchBundleParams) *Bundle {
	now := time.Now().UTC()
	entries := make([]BundleEntry, len(resources))
	for i, r := range resources {
		raw, _ := json.Marshal(r)
		entries[i] = BundleEntry{
			FullURL:  extractFullURL(r),
			Resource: raw,
			Search:   &BundleSearch{Mode: "match"},
		}
	}

	return &Bundle{
		ResourceType: "Bundle",
		Type:         "searchset",
		Total:        &params.Total,
		Timestamp:    &now,
		Link:         buildPaginationLinks(params),
		Entry:        entries,
	}
}

// NewCollectionBundle creates a collection Bundle (used by $everything).
// Entries keep the given order and carry no search mode.
func NewCollectionBundle(resources []map[string]interface{}) *Bundle {
	now := time.Now().UTC()
	total := len(resources)
	entries := make([]BundleEntry, len(resources))
	for i, r := range resources {
		raw, _ := json.Marshal(r)
		entries[i] = BundleEntry{
			FullURL:  extractFullURL(r),
			Resource: raw,
		}
	}

	return &Bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Total:        &total,
		Timestamp:    &now,
		Entry:        entries,
	}
}

// extractFullURL builds a relative fullUrl from a resource's resourceType and id.
func extractFullURL(m map[string]interface{}) string {
	rt, _ := m["resourceType"].(string)
	id, _ := m["id"].(string)
	if rt != "" && id != "" {
		return fmt.Sprintf("%s/%s", rt, id)
	}
	return ""
}

// buildPaginationLinks creates self, next, and previous links for searchset bundles.
func buildPaginationLinks(params SearchBundleParams) []BundleLink {
	page := pagination.Params{Count: params.Count, Offset: params.Offset}

	links := []BundleLink{
		{
			Relation: "self",
			URL:      pageURL(params, params.Offset),
		},
	}

	if page.HasNext(params.Total) {
		links = append(links, BundleLink{
			Relation: "next",
			URL:      pageURL(params, params.Offset+params.Count),
		})
	}

	if page.HasPrevious() {
		prevOffset := params.Offset - params.Count
		if prevOffset < 0 {
			prevOffset = 0
		}
		links = append(links, BundleLink{
			Relation: "previous",
			URL:      pageURL(params, prevOffset),
		})
	}

	return links
}

// pageURL rebuilds the query for one page. Paging params the client sent are
// dropped first so links never carry duplicate _count or _offset values.
func pageURL(params SearchBundleParams, offset int) string {
	qs := stripPagingParams(params.QueryStr)
	if qs != "" {
		qs += "&"
	}
	return fmt.Sprintf("%s?%s_count=%d&_offset=%d", params.BaseURL, qs, params.Count, offset)
}

func stripPagingParams(qs string) string {
	if qs == "" {
		return ""
	}
	var kept []string
	for _, part := range strings.Split(qs, "&") {
		if strings.HasPrefix(part, "_count=") || strings.HasPrefix(part, "_offset=") {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "&")
}
