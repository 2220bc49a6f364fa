package layout

import (
	"fmt"
	"time"

	"flatplan/internal/catalog"
)

// Page is one slot in the flatplan sequence. TemplateID and Units are
// populated only while Type is PageMixed; every mutation path clears
// them when the page leaves the mixed state.
type Page struct {
	ID             string
	SequenceNumber int
	Type           PageType
	Name           string
	Section        string
	FormBreak      bool
	TemplateID     int
	Units          []FractionalUnit
}

func newPageID() string {
	return fmt.Sprintf("page-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

// SetContentType switches the page's type. Leaving the mixed state
// destroys the fractional data; entering it leaves the units empty until
// a template is applied.
func (p *Page) SetContentType(t PageType) error {
	const op = "layout.Page.SetContentType"

	if !t.Valid() {
		return fmt.Errorf("%s: page type %q: %w", op, t, ErrValidation)
	}

	p.Type = t
	if t != PageMixed {
		p.TemplateID = 0
		p.Units = nil
	}
	p.normalize()
	return nil
}

// SetName sets a free-text name. On mixed and placeholder pages the
// fixed value wins regardless of the input.
func (p *Page) SetName(name string) {
	p.Name = name
	p.normalize()
}

// SetSection sets a free-text section, subject to the same fixed-value
// override as SetName.
func (p *Page) SetSection(section string) {
	p.Section = section
	p.normalize()
}

func (p *Page) SetFormBreak(on bool) {
	p.FormBreak = on
}

// ApplyTemplate replaces the page's unit list with an instantiation of
// the template, migrating matching units from the current list.
func (p *Page) ApplyTemplate(t catalog.Template) error {
	const op = "layout.Page.ApplyTemplate"

	if p.Type != PageMixed {
		return fmt.Errorf("%s: page %s is %q, not mixed: %w", op, p.ID, p.Type, ErrInvalidState)
	}

	p.Units = InstantiateUnits(t, p.Units)
	p.TemplateID = t.ID
	return nil
}

// Unit returns the unit with the given id.
func (p *Page) Unit(id string) (*FractionalUnit, error) {
	for i := range p.Units {
		if p.Units[i].ID == id {
			return &p.Units[i], nil
		}
	}
	return nil, fmt.Errorf("unit %s on page %s: %w", id, p.ID, ErrNotFound)
}

// normalize re-asserts the type-conditional invariants: fixed
// name/section for mixed and placeholder pages, no fractional data
// outside the mixed state.
func (p *Page) normalize() {
	if p.Type != PageMixed {
		p.TemplateID = 0
		p.Units = nil
	}
	switch p.Type {
	case PageMixed:
		p.Name = MixedPageName
		p.Section = MixedPageSection
	case PagePlaceholder:
		p.Name = PlaceholderPageName
		p.Section = PlaceholderPageSection
	}
}
