package fhir

import (
	"time"
)

// CapabilityStatement represents the FHIR CapabilityStatement (metadata).
type CapabilityStatement struct {
	ResourceType   string            `json:"resourceType"`
	Status         string            `json:"status"`
	Date           string            `json:"date"`
	Kind           string            `json:"kind"`
	FHIRVersion    string            `json:"fhirVersion"`
	Format         []string          `json:"format"`
	Implementation *CSImplementation `json:"implementation,omitempty"`
	Rest           []CSRest          `json:"rest"`
}

type CSImplementation struct {
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type CSRest struct {
	Mode     string       `json:"mode"`
	Resource []CSResource `json:"resource"`
	Security *CSSecurity  `json:"security,omitempty"`
}

type CSResource struct {
	Type        string          `json:"type"`
	Interaction []CSInteraction `json:"interaction"`
	SearchParam []CSSearchParam `json:"searchParam,omitempty"`
	Operation   []CSOperation   `json:"operation,omitempty"`
}

type CSInteraction struct {
	Code string `json:"code"`
}

type CSSearchParam struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Definition string `json:"definition,omitempty"`
}

type CSOperation struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

type CSSecurity struct {
	CORS    bool              `json:"cors"`
	Service []CodeableConcept `json:"service,omitempty"`
}

// NewCapabilityStatement creates the server's capability statement. The
// resource list must mirror exactly what the handlers accept: same types,
// same search params, read and search-type only.
func NewCapabilityStatement(baseURL string, resources []CSResource) *CapabilityStatement {
	return &CapabilityStatement{
		ResourceType: "CapabilityStatement",
		Status:       "active",
		Date:         time.Now().UTC().Format("2006-01-02"),
		Kind:         "instance",
		FHIRVersion:  "4.0.1",
		Format:       []string{"json"},
		Implementation: &CSImplementation{
			Description: "MedicalBible FHIR R4 Adaptation Layer",
			URL:         baseURL,
		},
		Rest: []CSRest{
			{
				Mode:     "server",
				Resource: resources,
				Security: &CSSecurity{
					CORS: true,
					Service: []CodeableConcept{
						{
							Coding: []Coding{
								{
									System:  "http://terminology.hl7.org/CodeSystem/restful-security-service",
									Code:    "OAuth",
									Display: "OAuth",
								},
							},
							Text: "Bearer token issued by the platform identity service",
						},
					},
				},
			},
		},
	}
}

// ReadOnlyCapability creates a CSResource limited to read and search-type.
func ReadOnlyCapability(resourceType string, searchParams []CSSearchParam) CSResource {
	return CSResource{
		Type: resourceType,
		Interaction: []CSInteraction{
			{Code: "read"},
			{Code: "search-type"},
		},
		SearchParam: searchParams,
	}
}

// ReadCapability creates a CSResource limited to instance read, for resources
// with no search route.
func ReadCapability(resourceType string) CSResource {
	return CSResource{
		Type:        resourceType,
		Interaction: []CSInteraction{{Code: "read"}},
	}
}
