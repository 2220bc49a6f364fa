package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flatplan/internal/catalog"
)

func TestInstantiateUnits_FreshDefaults(t *testing.T) {
	tpl, err := catalog.Get(101)
	assert.NoError(t, err)

	units := InstantiateUnits(tpl, nil)
	assert.Len(t, units, 4)

	for i, u := range units {
		region := tpl.Regions[i]
		assert.Equal(t, region.Size, u.Size)
		assert.Equal(t, region.Position, u.Position)
		assert.Equal(t, region.DefaultType, u.Type)
		assert.NotEmpty(t, u.ID)
		if region.DefaultType == catalog.ContentAd {
			assert.Equal(t, "Advertisement", u.Name)
			assert.Equal(t, "paid", u.Section)
		} else {
			assert.Equal(t, "Editorial", u.Name)
			assert.Equal(t, "Feature", u.Section)
		}
	}
}

// Switching 101 -> 104 keeps the two top quarters, which both templates
// share, and creates a fresh bottom half.
func TestInstantiateUnits_MigratesMatchingGeometry(t *testing.T) {
	quad, err := catalog.Get(101)
	assert.NoError(t, err)
	split, err := catalog.Get(104)
	assert.NoError(t, err)

	existing := InstantiateUnits(quad, nil)
	existing[0].Name = "Cover story"
	existing[0].Section = "FOB"
	existing[1].Name = "Back cover promo"

	migrated := InstantiateUnits(split, existing)
	assert.Len(t, migrated, 3)

	assert.Equal(t, existing[0].ID, migrated[0].ID)
	assert.Equal(t, "Cover story", migrated[0].Name)
	assert.Equal(t, "FOB", migrated[0].Section)
	assert.Equal(t, existing[1].ID, migrated[1].ID)
	assert.Equal(t, "Back cover promo", migrated[1].Name)

	// Bottom half has no geometric match among the quadrants.
	assert.Equal(t, catalog.SizeHalf, migrated[2].Size)
	assert.Equal(t, "Editorial", migrated[2].Name)
	for _, u := range existing {
		assert.NotEqual(t, u.ID, migrated[2].ID)
	}
}

func TestInstantiateUnits_FillsBlankFields(t *testing.T) {
	tpl, err := catalog.Get(102)
	assert.NoError(t, err)

	existing := []FractionalUnit{
		{ID: "frac-1", Size: catalog.SizeHalf, Position: catalog.PosLeft},
	}

	units := InstantiateUnits(tpl, existing)
	assert.Equal(t, "frac-1", units[0].ID)
	assert.Equal(t, "Editorial", units[0].Name)
	assert.Equal(t, "Feature", units[0].Section)
	assert.Equal(t, catalog.ContentEditorial, units[0].Type)
}

func TestApply_ValidPatch(t *testing.T) {
	u := FractionalUnit{
		ID:   "frac-1",
		Name: "Editorial",
		Type: catalog.ContentEditorial,
	}

	err := u.Apply(UnitPatch{Name: "Quarter ad", Section: "paid", Type: catalog.ContentAd})
	assert.NoError(t, err)
	assert.Equal(t, "Quarter ad", u.Name)
	assert.Equal(t, "paid", u.Section)
	assert.Equal(t, catalog.ContentAd, u.Type)
}

func TestApply_RejectsInvalidPatch(t *testing.T) {
	u := FractionalUnit{ID: "frac-1", Name: "Editorial", Section: "Feature", Type: catalog.ContentEditorial}

	cases := []struct {
		name  string
		patch UnitPatch
	}{
		{"empty name", UnitPatch{Name: "", Section: "Feature", Type: catalog.ContentEditorial}},
		{"empty section", UnitPatch{Name: "Editorial", Section: "", Type: catalog.ContentEditorial}},
		{"unknown type", UnitPatch{Name: "Editorial", Section: "Feature", Type: catalog.ContentType("banner")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := u.Apply(tc.patch)
			assert.ErrorIs(t, err, ErrValidation)

			// Untouched after rejection.
			assert.Equal(t, "Editorial", u.Name)
			assert.Equal(t, "Feature", u.Section)
			assert.Equal(t, catalog.ContentEditorial, u.Type)
		})
	}
}

// Unit ids must stay unique within a page even when many are minted in
// the same millisecond.
func TestInstantiateUnits_IDsUniqueWithinPage(t *testing.T) {
	tpl, err := catalog.Get(101)
	assert.NoError(t, err)

	for i := 0; i < 5000; i++ {
		units := InstantiateUnits(tpl, nil)

		seen := make(map[string]struct{}, len(units))
		for _, u := range units {
			_, dup := seen[u.ID]
			assert.False(t, dup, "duplicate unit id %s", u.ID)
			seen[u.ID] = struct{}{}
		}
	}
}

func TestNewUnitID_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := newUnitID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestMatchesTemplate(t *testing.T) {
	tpl, err := catalog.Get(101)
	assert.NoError(t, err)

	units := InstantiateUnits(tpl, nil)
	assert.True(t, MatchesTemplate(units, tpl))

	assert.False(t, MatchesTemplate(units[:3], tpl))

	other, err := catalog.Get(102)
	assert.NoError(t, err)
	assert.False(t, MatchesTemplate(units, other))
}
