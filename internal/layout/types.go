// Package layout is the in-memory model of one issue's flatplan: an
// ordered list of pages, the fractional-unit breakdown of mixed pages,
// the JSON document shape the editor saves and loads, and the analytics
// projection over all of it. The rendering layer reads from this model,
// never the other way around.
package layout

import "fmt"

// PageType classifies one page slot.
type PageType string

const (
	PageEditorial   PageType = "edit"
	PageAd          PageType = "ad"
	PageMixed       PageType = "mixed"
	PagePlaceholder PageType = "placeholder"
	PageUnknown     PageType = "unknown"
)

// Fixed display values for page types whose name/section are not
// user-editable.
const (
	MixedPageName          = "Fractional"
	MixedPageSection       = "Mixed"
	PlaceholderPageName    = "Open"
	PlaceholderPageSection = "Placeholder"
)

// TypeInfo is the single lookup for presentation attributes of a page
// type, shared by exports and reports.
type TypeInfo struct {
	Label string
	Color string
}

var typeInfo = map[PageType]TypeInfo{
	PageEditorial:   {Label: "Editorial", Color: "DBEAFE"},
	PageAd:          {Label: "Advertisement", Color: "FEE2E2"},
	PageMixed:       {Label: "Mixed", Color: "EDE9FE"},
	PagePlaceholder: {Label: "Placeholder", Color: "F3F4F6"},
	PageUnknown:     {Label: "Unknown", Color: "E5E7EB"},
}

func (t PageType) Valid() bool {
	_, ok := typeInfo[t]
	return ok
}

func (t PageType) Info() TypeInfo {
	if info, ok := typeInfo[t]; ok {
		return info
	}
	return typeInfo[PageUnknown]
}

// ParsePageType validates a raw type string coming from the editor.
func ParsePageType(s string) (PageType, error) {
	t := PageType(s)
	if !t.Valid() {
		return "", fmt.Errorf("page type %q: %w", s, ErrValidation)
	}
	return t, nil
}
