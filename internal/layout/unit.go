package layout

import (
	"fmt"
	"math/rand/v2"
	"time"

	"flatplan/internal/catalog"
)

// Default sections assigned to freshly created units.
const (
	defaultEditorialSection = "Feature"
	defaultAdSection        = "paid"
)

// FractionalUnit is one region instance within a mixed page. Size and
// position are fixed by the template region it instantiates; id, name,
// section and type survive template re-application when the region
// geometry matches.
type FractionalUnit struct {
	ID       string
	Name     string
	Section  string
	Size     catalog.Size
	Position catalog.Position
	Type     catalog.ContentType
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomSuffix returns 9 base-36 characters, enough that ids minted in
// the same millisecond do not collide.
func randomSuffix() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// newUnitID generates a unit id unique within the page, in the same
// timestamp-plus-suffix form the editor produces.
func newUnitID() string {
	return fmt.Sprintf("frac-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

// InstantiateUnits builds the unit list for a template, carrying over
// data from existing units whose (size, position) pair matches a
// template region. Unmatched regions get fresh units with catalog
// defaults. Output order follows template region order, so the result
// is always in 1:1 correspondence with the template.
//
// This is the migration step that prevents data loss when switching
// between templates that share region geometry.
func InstantiateUnits(t catalog.Template, existing []FractionalUnit) []FractionalUnit {
	units := make([]FractionalUnit, 0, len(t.Regions))

	for _, region := range t.Regions {
		var match *FractionalUnit
		for i := range existing {
			if existing[i].Size == region.Size && existing[i].Position == region.Position {
				match = &existing[i]
				break
			}
		}

		if match != nil {
			unit := FractionalUnit{
				ID:       match.ID,
				Name:     match.Name,
				Section:  match.Section,
				Size:     region.Size,
				Position: region.Position,
				Type:     match.Type,
			}
			if unit.ID == "" {
				unit.ID = newUnitID()
			}
			if unit.Name == "" {
				unit.Name = region.DefaultType.Label()
			}
			if unit.Section == "" {
				unit.Section = defaultSection(region.DefaultType)
			}
			if !unit.Type.Valid() {
				unit.Type = region.DefaultType
			}
			units = append(units, unit)
			continue
		}

		units = append(units, FractionalUnit{
			ID:       newUnitID(),
			Name:     region.DefaultType.Label(),
			Section:  defaultSection(region.DefaultType),
			Size:     region.Size,
			Position: region.Position,
			Type:     region.DefaultType,
		})
	}

	return units
}

func defaultSection(t catalog.ContentType) string {
	if t == catalog.ContentAd {
		return defaultAdSection
	}
	return defaultEditorialSection
}

// UnitPatch carries the editable fields of a unit. Size and position
// are template-fixed and deliberately absent.
type UnitPatch struct {
	Name    string
	Section string
	Type    catalog.ContentType
}

// Apply validates and applies a patch from the unit editor. The unit is
// untouched when an error is returned.
func (u *FractionalUnit) Apply(p UnitPatch) error {
	const op = "layout.FractionalUnit.Apply"

	if p.Name == "" {
		return fmt.Errorf("%s: unit name must not be empty: %w", op, ErrValidation)
	}
	if p.Section == "" {
		return fmt.Errorf("%s: unit section must not be empty: %w", op, ErrValidation)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%s: content type %q: %w", op, p.Type, ErrValidation)
	}

	u.Name = p.Name
	u.Section = p.Section
	u.Type = p.Type
	return nil
}

// MatchesTemplate reports whether the unit list is a valid instantiation
// of the template: same count and an identical multiset of
// (size, position) pairs.
func MatchesTemplate(units []FractionalUnit, t catalog.Template) bool {
	if len(units) != len(t.Regions) {
		return false
	}

	type pair struct {
		size catalog.Size
		pos  catalog.Position
	}
	remaining := make(map[pair]int, len(t.Regions))
	for _, r := range t.Regions {
		remaining[pair{r.Size, r.Position}]++
	}
	for _, u := range units {
		p := pair{u.Size, u.Position}
		if remaining[p] == 0 {
			return false
		}
		remaining[p]--
	}
	return true
}
