package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flatplan/internal/catalog"
)

func TestComputeAnalytics_EmptyDocument(t *testing.T) {
	a := ComputeAnalytics(NewDocument())

	assert.Zero(t, a.TotalPages)
	assert.Zero(t, a.TotalEditorial)
	assert.Zero(t, a.TotalAds)

	// Histogram keys are pre-seeded so the chart always has all sizes.
	assert.Equal(t, map[string]int{"1/4": 0, "1/3": 0, "1/2": 0, "2/3": 0}, a.FractionalAdSizes)
}

func TestComputeAnalytics_MixedPageSplitsTotals(t *testing.T) {
	doc := NewDocument()

	edit := doc.AddPage()
	assert.NoError(t, edit.SetContentType(PageEditorial))
	edit.SetSection("Feature")

	ad := doc.AddPage()
	assert.NoError(t, ad.SetContentType(PageAd))
	ad.SetSection("paid")

	mixed := doc.AddPage()
	assert.NoError(t, mixed.SetContentType(PageMixed))
	tpl, err := catalog.Get(102)
	assert.NoError(t, err)
	assert.NoError(t, mixed.ApplyTemplate(tpl))

	a := ComputeAnalytics(doc)

	assert.Equal(t, 3, a.TotalPages)
	assert.InDelta(t, 1.5, a.TotalEditorial, 1e-9)
	assert.InDelta(t, 1.5, a.TotalAds, 1e-9)

	assert.Equal(t, 1, a.PageTypes.Edit.Total)
	assert.Equal(t, 1, a.PageTypes.Ad.Total)
	assert.Equal(t, 1, a.PageTypes.Mixed.Total)
	assert.Equal(t, map[string]int{"Feature": 1}, a.PageTypes.Edit.Sections)
	assert.Equal(t, map[string]int{"Mixed": 1}, a.PageTypes.Mixed.Sections)

	assert.InDelta(t, 0.5, a.PageTypes.Mixed.AdPercentage, 1e-9)
	assert.InDelta(t, 0.5, a.PageTypes.Mixed.EditorialPercentage, 1e-9)

	// Both halves count, whatever their content type.
	assert.Equal(t, 2, a.FractionalAdSizes["1/2"])
}

// Full pages plus all fractional shares always add up to the page count
// when every page is either whole or fully tiled.
func TestComputeAnalytics_Conservation(t *testing.T) {
	doc := NewDocument()

	for _, id := range []int{101, 104, 108, 109} {
		p := doc.AddPage()
		assert.NoError(t, p.SetContentType(PageMixed))
		tpl, err := catalog.Get(id)
		assert.NoError(t, err)
		assert.NoError(t, p.ApplyTemplate(tpl))
	}

	e := doc.AddPage()
	assert.NoError(t, e.SetContentType(PageEditorial))
	e.SetName("Feature well")
	e.SetSection("Feature")

	a := ComputeAnalytics(doc)
	assert.Equal(t, 5, a.TotalPages)
	assert.InDelta(t, float64(a.TotalPages), a.TotalEditorial+a.TotalAds, 1e-9)
}

func TestComputeAnalytics_UncategorizedSection(t *testing.T) {
	doc, _ := FromRecords([]PageRecord{
		{ID: "page-1", Name: "Untitled", Type: "edit"},
	})

	a := ComputeAnalytics(doc)
	assert.Equal(t, map[string]int{"Uncategorized": 1}, a.PageTypes.Edit.Sections)
}

func TestComputeAnalytics_UnknownBucket(t *testing.T) {
	doc, _ := FromRecords([]PageRecord{
		{ID: "page-1", Name: "???", Section: "FOB", Type: "banner"},
	})

	a := ComputeAnalytics(doc)
	assert.Equal(t, 1, a.TotalPages)
	assert.Equal(t, 1, a.PageTypes.Unknown.Total)
	assert.Zero(t, a.TotalEditorial)
	assert.Zero(t, a.TotalAds)
}

func TestComputeAnalytics_PlaceholderCountsPagesOnly(t *testing.T) {
	doc := NewDocument()
	doc.AddPage()

	a := ComputeAnalytics(doc)
	assert.Equal(t, 1, a.TotalPages)
	assert.Equal(t, 1, a.PageTypes.Placeholder.Total)
	assert.Zero(t, a.TotalEditorial)
	assert.Zero(t, a.TotalAds)
}
