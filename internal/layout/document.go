package layout

import "fmt"

// SentinelID identifies the reserved anchor page at position 0. It is
// never counted, exported, or removable; it only gives the spread view a
// fixed starting point.
const SentinelID = "page-0"

// Document is the ordered collection of pages for one issue. Index 0 is
// always the sentinel; sequence numbers of the remaining pages are
// recomputed from position after every structural change, never trusted
// from stored data.
type Document struct {
	pages []*Page
}

// NewDocument returns an empty document containing only the sentinel.
func NewDocument() *Document {
	return &Document{pages: []*Page{sentinelPage()}}
}

func sentinelPage() *Page {
	return &Page{
		ID:      SentinelID,
		Type:    PagePlaceholder,
		Name:    "—",
		Section: "Start",
	}
}

// Pages returns the non-sentinel pages in document order.
func (d *Document) Pages() []*Page {
	return d.pages[1:]
}

// Len is the number of non-sentinel pages.
func (d *Document) Len() int {
	return len(d.pages) - 1
}

// GetPage looks a page up by id, sentinel included.
func (d *Document) GetPage(id string) (*Page, error) {
	for _, p := range d.pages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("page %s: %w", id, ErrNotFound)
}

// AddPage appends a new placeholder page at the end of the document and
// resequences.
func (d *Document) AddPage() *Page {
	p := &Page{
		ID:   newPageID(),
		Type: PagePlaceholder,
	}
	p.normalize()
	d.pages = append(d.pages, p)
	d.resequence()
	return p
}

// RemovePage deletes a page by id and resequences. Removing the
// sentinel is rejected.
func (d *Document) RemovePage(id string) error {
	const op = "layout.Document.RemovePage"

	if id == SentinelID {
		return fmt.Errorf("%s: sentinel page cannot be removed: %w", op, ErrInvalidState)
	}

	for i, p := range d.pages {
		if p.ID == id {
			d.pages = append(d.pages[:i], d.pages[i+1:]...)
			d.resequence()
			return nil
		}
	}
	return fmt.Errorf("%s: page %s: %w", op, id, ErrNotFound)
}

// Reorder replaces the document order with the given id sequence, which
// must be a permutation of the current non-sentinel ids. On any
// mismatch the document is left untouched.
func (d *Document) Reorder(ids []string) error {
	const op = "layout.Document.Reorder"

	if len(ids) != d.Len() {
		return fmt.Errorf("%s: got %d ids, document has %d pages: %w", op, len(ids), d.Len(), ErrInvalidState)
	}

	byID := make(map[string]*Page, d.Len())
	for _, p := range d.Pages() {
		byID[p.ID] = p
	}

	reordered := make([]*Page, 0, len(d.pages))
	reordered = append(reordered, d.pages[0])
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return fmt.Errorf("%s: id %s is unknown or duplicated: %w", op, id, ErrInvalidState)
		}
		delete(byID, id)
		reordered = append(reordered, p)
	}

	d.pages = reordered
	d.resequence()
	return nil
}

// resequence assigns dense 1-based sequence numbers by position. It runs
// synchronously inside every structural mutation, so serialization never
// observes a stale number.
func (d *Document) resequence() {
	for i, p := range d.Pages() {
		p.SequenceNumber = i + 1
	}
}
