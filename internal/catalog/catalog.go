// Package catalog holds the fixed set of mixed-page layout templates.
// Templates are defined at build time and never change at runtime; adding
// one is a deployment-time change.
package catalog

import (
	"errors"
	"fmt"
)

// Size is the fraction of the page area a region occupies.
type Size string

const (
	SizeQuarter   Size = "1/4"
	SizeThird     Size = "1/3"
	SizeHalf      Size = "1/2"
	SizeTwoThirds Size = "2/3"
)

// Position places a region on the page. Quarter regions use corner
// positions, every other size uses edge positions.
type Position string

const (
	PosTopLeft     Position = "top-left"
	PosTopRight    Position = "top-right"
	PosBottomLeft  Position = "bottom-left"
	PosBottomRight Position = "bottom-right"
	PosTop         Position = "top"
	PosBottom      Position = "bottom"
	PosLeft        Position = "left"
	PosRight       Position = "right"
)

// ContentType of a fractional unit.
type ContentType string

const (
	ContentEditorial ContentType = "edit"
	ContentAd        ContentType = "ad"
)

var ErrNotFound = errors.New("template not found")

type Region struct {
	Key         string      `json:"region_key"`
	Size        Size        `json:"size"`
	Position    Position    `json:"position"`
	DefaultType ContentType `json:"default_content_type"`
}

type Template struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Regions     []Region `json:"regions"`
}

// templates is the full catalog, ordered by id. Region order within a
// template is the order units are created and rendered in.
var templates = []Template{
	{
		ID:          101,
		Name:        "Four Quadrants",
		Description: "Page divided into four equal quadrants",
		Regions: []Region{
			{Key: "top-left", Size: SizeQuarter, Position: PosTopLeft, DefaultType: ContentEditorial},
			{Key: "top-right", Size: SizeQuarter, Position: PosTopRight, DefaultType: ContentAd},
			{Key: "bottom-left", Size: SizeQuarter, Position: PosBottomLeft, DefaultType: ContentEditorial},
			{Key: "bottom-right", Size: SizeQuarter, Position: PosBottomRight, DefaultType: ContentAd},
		},
	},
	{
		ID:          102,
		Name:        "Vertical Split",
		Description: "Page split into left and right halves",
		Regions: []Region{
			{Key: "left", Size: SizeHalf, Position: PosLeft, DefaultType: ContentEditorial},
			{Key: "right", Size: SizeHalf, Position: PosRight, DefaultType: ContentAd},
		},
	},
	{
		ID:          103,
		Name:        "Horizontal Split",
		Description: "Page split into top and bottom halves",
		Regions: []Region{
			{Key: "top", Size: SizeHalf, Position: PosTop, DefaultType: ContentEditorial},
			{Key: "bottom", Size: SizeHalf, Position: PosBottom, DefaultType: ContentAd},
		},
	},
	{
		ID:          104,
		Name:        "Top Split with Bottom Bar",
		Description: "Top half split vertically, bottom half as one unit",
		Regions: []Region{
			{Key: "top-left", Size: SizeQuarter, Position: PosTopLeft, DefaultType: ContentEditorial},
			{Key: "top-right", Size: SizeQuarter, Position: PosTopRight, DefaultType: ContentAd},
			{Key: "bottom", Size: SizeHalf, Position: PosBottom, DefaultType: ContentEditorial},
		},
	},
	{
		ID:          105,
		Name:        "Top Bar with Bottom Split",
		Description: "Top half as one unit, bottom half split vertically",
		Regions: []Region{
			{Key: "top", Size: SizeHalf, Position: PosTop, DefaultType: ContentEditorial},
			{Key: "bottom-left", Size: SizeQuarter, Position: PosBottomLeft, DefaultType: ContentAd},
			{Key: "bottom-right", Size: SizeQuarter, Position: PosBottomRight, DefaultType: ContentEditorial},
		},
	},
	{
		ID:          106,
		Name:        "Left Bar with Right Split",
		Description: "Left half as one unit, right half split horizontally",
		Regions: []Region{
			{Key: "left", Size: SizeHalf, Position: PosLeft, DefaultType: ContentEditorial},
			{Key: "top-right", Size: SizeQuarter, Position: PosTopRight, DefaultType: ContentAd},
			{Key: "bottom-right", Size: SizeQuarter, Position: PosBottomRight, DefaultType: ContentEditorial},
		},
	},
	{
		ID:          107,
		Name:        "Right Bar with Left Split",
		Description: "Right half as one unit, left half split horizontally",
		Regions: []Region{
			{Key: "right", Size: SizeHalf, Position: PosRight, DefaultType: ContentAd},
			{Key: "top-left", Size: SizeQuarter, Position: PosTopLeft, DefaultType: ContentEditorial},
			{Key: "bottom-left", Size: SizeQuarter, Position: PosBottomLeft, DefaultType: ContentEditorial},
		},
	},
	{
		ID:          108,
		Name:        "1/3 - 2/3 Vertical Split",
		Description: "Page split vertically with 1/3 left and 2/3 right",
		Regions: []Region{
			{Key: "left", Size: SizeThird, Position: PosLeft, DefaultType: ContentAd},
			{Key: "right", Size: SizeTwoThirds, Position: PosRight, DefaultType: ContentEditorial},
		},
	},
	{
		ID:          109,
		Name:        "2/3 - 1/3 Vertical Split",
		Description: "Page split vertically with 2/3 left and 1/3 right",
		Regions: []Region{
			{Key: "left", Size: SizeTwoThirds, Position: PosLeft, DefaultType: ContentEditorial},
			{Key: "right", Size: SizeThird, Position: PosRight, DefaultType: ContentAd},
		},
	},
}

// Get returns the template with the given id.
func Get(id int) (Template, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("template id=%d: %w", id, ErrNotFound)
}

// All returns the catalog in id order. Callers must treat the result as
// read-only.
func All() []Template {
	return templates
}

// Decimal converts a fractional size to its page-area share.
func (s Size) Decimal() float64 {
	switch s {
	case SizeQuarter:
		return 0.25
	case SizeThird:
		return 1.0 / 3.0
	case SizeHalf:
		return 0.5
	case SizeTwoThirds:
		return 2.0 / 3.0
	}
	return 0
}

func (s Size) Valid() bool {
	switch s {
	case SizeQuarter, SizeThird, SizeHalf, SizeTwoThirds:
		return true
	}
	return false
}

// ValidFor reports whether the position belongs to the vocabulary of the
// given size: corners for quarters, edges for everything else.
func (p Position) ValidFor(s Size) bool {
	corner := p == PosTopLeft || p == PosTopRight || p == PosBottomLeft || p == PosBottomRight
	if s == SizeQuarter {
		return corner
	}
	return p == PosTop || p == PosBottom || p == PosLeft || p == PosRight
}

func (c ContentType) Valid() bool {
	return c == ContentEditorial || c == ContentAd
}

// Label returns the display name of a content type.
func (c ContentType) Label() string {
	if c == ContentAd {
		return "Advertisement"
	}
	return "Editorial"
}
