package layout

import (
	"fmt"

	"flatplan/internal/catalog"
)

// UnitRecord is the wire form of a fractional unit.
type UnitRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Section  string `json:"section"`
	Size     string `json:"size"`
	Position string `json:"position"`
	Type     string `json:"type"`
}

// PageRecord is the wire form of one page in the layout document, the
// shape the editor saves and the export consumes. fractional_units is
// always an array and mixed_page_template_id always null for non-mixed
// pages.
type PageRecord struct {
	ID                  string       `json:"id,omitempty"`
	Name                string       `json:"name"`
	Section             string       `json:"section"`
	PageNumber          int          `json:"page_number"`
	Type                string       `json:"type"`
	FormBreak           bool         `json:"form_break"`
	FractionalUnits     []UnitRecord `json:"fractional_units"`
	MixedPageTemplateID *int         `json:"mixed_page_template_id"`
}

// Records serializes the document to its canonical JSON shape: one
// record per non-sentinel page in reading order. The fixed name/section
// rule for mixed and placeholder pages is re-asserted here so the
// exported document can never carry a free-text name for those types,
// whatever the in-memory state says.
func (d *Document) Records() []PageRecord {
	d.resequence()

	records := make([]PageRecord, 0, d.Len())
	for _, p := range d.Pages() {
		name, section := p.Name, p.Section
		switch p.Type {
		case PageMixed:
			name, section = MixedPageName, MixedPageSection
		case PagePlaceholder:
			name, section = PlaceholderPageName, PlaceholderPageSection
		}

		rec := PageRecord{
			ID:              p.ID,
			Name:            name,
			Section:         section,
			PageNumber:      p.SequenceNumber,
			Type:            string(p.Type),
			FormBreak:       p.FormBreak,
			FractionalUnits: []UnitRecord{},
		}

		if p.Type == PageMixed {
			for _, u := range p.Units {
				rec.FractionalUnits = append(rec.FractionalUnits, UnitRecord{
					ID:       u.ID,
					Name:     u.Name,
					Section:  u.Section,
					Size:     string(u.Size),
					Position: string(u.Position),
					Type:     string(u.Type),
				})
			}
			if p.TemplateID != 0 {
				id := p.TemplateID
				rec.MixedPageTemplateID = &id
			}
		}

		records = append(records, rec)
	}
	return records
}

// FromRecords rebuilds a document from its wire form. A record with an
// unknown type, or a mixed record whose units are not a valid
// instantiation of the referenced template, is coerced to an unknown
// page with no units and reported as a warning instead of failing the
// whole load; one bad record must not block the rest of the issue.
func FromRecords(records []PageRecord) (*Document, []string) {
	doc := NewDocument()
	var warnings []string

	for i, rec := range records {
		p := &Page{
			ID:        rec.ID,
			Name:      rec.Name,
			Section:   rec.Section,
			FormBreak: rec.FormBreak,
		}
		if p.ID == "" {
			p.ID = newPageID()
		}

		t := PageType(rec.Type)
		if !t.Valid() {
			warnings = append(warnings, fmt.Sprintf("page %d: unknown type %q, coerced to unknown", i+1, rec.Type))
			t = PageUnknown
		}
		p.Type = t

		if p.Type == PageMixed {
			if warn := loadMixedPage(p, rec); warn != "" {
				warnings = append(warnings, fmt.Sprintf("page %d: %s, coerced to unknown", i+1, warn))
				p.Type = PageUnknown
			}
		}

		p.normalize()
		doc.pages = append(doc.pages, p)
	}

	doc.resequence()
	return doc, warnings
}

// loadMixedPage fills in the fractional data of a mixed record,
// returning a non-empty reason when the record is not salvageable as a
// mixed page.
func loadMixedPage(p *Page, rec PageRecord) string {
	if rec.MixedPageTemplateID == nil {
		// A mixed page with no template is the transient
		// pre-selection state; acceptable only while it carries no
		// unit data.
		if len(rec.FractionalUnits) > 0 {
			return "mixed page has units but no template"
		}
		return ""
	}

	tpl, err := catalog.Get(*rec.MixedPageTemplateID)
	if err != nil {
		return fmt.Sprintf("unknown template id %d", *rec.MixedPageTemplateID)
	}

	units := make([]FractionalUnit, 0, len(rec.FractionalUnits))
	for _, ur := range rec.FractionalUnits {
		size := catalog.Size(ur.Size)
		pos := catalog.Position(ur.Position)
		ct := catalog.ContentType(ur.Type)
		if !size.Valid() || !pos.ValidFor(size) || !ct.Valid() {
			return fmt.Sprintf("unit %s has invalid size/position/type", ur.ID)
		}
		units = append(units, FractionalUnit{
			ID:       ur.ID,
			Name:     ur.Name,
			Section:  ur.Section,
			Size:     size,
			Position: pos,
			Type:     ct,
		})
	}

	if !MatchesTemplate(units, tpl) {
		return fmt.Sprintf("units do not match template %d regions", tpl.ID)
	}

	p.TemplateID = tpl.ID
	p.Units = units
	return ""
}
