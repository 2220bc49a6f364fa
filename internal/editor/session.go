// Package editor mediates user edits against a layout document. A
// Session is built per interaction (open modal, edit, close) and thrown
// away afterwards; there is no process-wide "currently editing" state.
package editor

import (
	"fmt"

	"flatplan/internal/catalog"
	"flatplan/internal/layout"
)

// Session is one open page-editor interaction: the page being edited
// and, while the unit modal is open, the unit within it.
type Session struct {
	doc  *layout.Document
	page *layout.Page
	unit *layout.FractionalUnit
}

// Open starts an edit session on an existing page.
func Open(doc *layout.Document, pageID string) (*Session, error) {
	const op = "editor.Open"

	page, err := doc.GetPage(pageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Session{doc: doc, page: page}, nil
}

// OpenNew appends a fresh page to the document and starts a session on
// it.
func OpenNew(doc *layout.Document) *Session {
	return &Session{doc: doc, page: doc.AddPage()}
}

// Page exposes the page under edit.
func (s *Session) Page() *layout.Page {
	return s.page
}

// SetContentType parses and applies a raw type string from the editor
// dropdown.
func (s *Session) SetContentType(raw string) error {
	t, err := layout.ParsePageType(raw)
	if err != nil {
		return err
	}
	return s.page.SetContentType(t)
}

// SetName applies a name edit. Empty names are rejected for free-text
// pages; fixed-name pages override the input regardless.
func (s *Session) SetName(name string) error {
	const op = "editor.Session.SetName"

	if name == "" && s.page.Type != layout.PageMixed && s.page.Type != layout.PagePlaceholder {
		return fmt.Errorf("%s: page name must not be empty: %w", op, layout.ErrValidation)
	}
	s.page.SetName(name)
	return nil
}

// SetSection applies a section edit under the same rules as SetName.
func (s *Session) SetSection(section string) error {
	const op = "editor.Session.SetSection"

	if section == "" && s.page.Type != layout.PageMixed && s.page.Type != layout.PagePlaceholder {
		return fmt.Errorf("%s: page section must not be empty: %w", op, layout.ErrValidation)
	}
	s.page.SetSection(section)
	return nil
}

func (s *Session) SetFormBreak(on bool) {
	s.page.SetFormBreak(on)
}

// ApplyTemplate resolves a catalog template and applies it to the page,
// migrating any units the previous template shared geometry with.
func (s *Session) ApplyTemplate(templateID int) error {
	const op = "editor.Session.ApplyTemplate"

	tpl, err := catalog.Get(templateID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.page.ApplyTemplate(tpl)
}

// OpenUnit selects a fractional unit of the page for editing.
func (s *Session) OpenUnit(unitID string) error {
	const op = "editor.Session.OpenUnit"

	unit, err := s.page.Unit(unitID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.unit = unit
	return nil
}

// Unit exposes the unit under edit, nil when no unit modal is open.
func (s *Session) Unit() *layout.FractionalUnit {
	return s.unit
}

// UpdateUnit applies a patch to the open unit.
func (s *Session) UpdateUnit(patch layout.UnitPatch) error {
	const op = "editor.Session.UpdateUnit"

	if s.unit == nil {
		return fmt.Errorf("%s: no unit open: %w", op, layout.ErrInvalidState)
	}
	return s.unit.Apply(patch)
}

// CloseUnit ends the unit interaction, keeping the page session open.
func (s *Session) CloseUnit() {
	s.unit = nil
}
