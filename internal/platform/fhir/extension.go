package fhir

// Extension is a FHIR extension element. Exactly one value[x] (or a nested
// Extension list) should be set.
type Extension struct {
	URL           string      `json:"url"`
	ValueString   *string     `json:"valueString,omitempty"`
	ValueInteger  *int64      `json:"valueInteger,omitempty"`
	ValueBoolean  *bool       `json:"valueBoolean,omitempty"`
	ValueDateTime *string     `json:"valueDateTime,omitempty"`
	Extension     []Extension `json:"extension,omitempty"`
}

// ExtensionBuilder collects (url, value) children, dropping any whose source
// attribute is absent, then wraps them under a parent extension URL. Children
// keep their append order.
type ExtensionBuilder struct {
	url      string
	children []Extension
}

func NewExtensionBuilder(url string) *ExtensionBuilder {
	return &ExtensionBuilder{url: url}
}

func (b *ExtensionBuilder) String(url, value string) *ExtensionBuilder {
	b.children = append(b.children, Extension{URL: url, ValueString: &value})
	return b
}

func (b *ExtensionBuilder) StringOpt(url string, value *string) *ExtensionBuilder {
	if value == nil {
		return b
	}
	return b.String(url, *value)
}

func (b *ExtensionBuilder) Integer(url string, value int64) *ExtensionBuilder {
	b.children = append(b.children, Extension{URL: url, ValueInteger: &value})
	return b
}

func (b *ExtensionBuilder) IntegerOpt(url string, value *int64) *ExtensionBuilder {
	if value == nil {
		return b
	}
	return b.Integer(url, *value)
}

func (b *ExtensionBuilder) Boolean(url string, value bool) *ExtensionBuilder {
	b.children = append(b.children, Extension{URL: url, ValueBoolean: &value})
	return b
}

func (b *ExtensionBuilder) DateTime(url, value string) *ExtensionBuilder {
	b.children = append(b.children, Extension{URL: url, ValueDateTime: &value})
	return b
}

// Build returns the composite extension, or nil when no child survived the
// presence filter.
func (b *ExtensionBuilder) Build() *Extension {
	if len(b.children) == 0 {
		return nil
	}
	return &Extension{URL: b.url, Extension: b.children}
}
