package layout

import "flatplan/internal/catalog"

// TypeStats aggregates whole-page counts for one page type.
type TypeStats struct {
	Total    int            `json:"total"`
	Sections map[string]int `json:"sections"`
}

// MixedTypeStats extends TypeStats with the average split of mixed
// pages between advertisement and editorial space.
type MixedTypeStats struct {
	TypeStats
	AdPercentage        float64 `json:"adPercentage"`
	EditorialPercentage float64 `json:"editorialPercentage"`
}

// PageTypeStats groups the per-type aggregates of an analytics run.
type PageTypeStats struct {
	Edit        TypeStats      `json:"edit"`
	Ad          TypeStats      `json:"ad"`
	Mixed       MixedTypeStats `json:"mixed"`
	Placeholder TypeStats      `json:"placeholder"`
	Unknown     TypeStats      `json:"unknown"`
}

// Analytics is the derived statistics view over one document.
// TotalEditorial and TotalAds are fractional on purpose: each mixed page
// contributes its advertisement share to TotalAds and the remainder to
// TotalEditorial, so non-integer page-equivalents are the intended
// output, not rounding noise.
type Analytics struct {
	TotalPages        int            `json:"total_pages"`
	TotalEditorial    float64        `json:"total_editorial"`
	TotalAds          float64        `json:"total_ads"`
	PageTypes         PageTypeStats  `json:"page_types"`
	FractionalAdSizes map[string]int `json:"fractional_ad_sizes"`
}

// ComputeAnalytics projects the document into its statistics view. The
// sentinel page is excluded; the document is read-only throughout.
func ComputeAnalytics(d *Document) Analytics {
	a := Analytics{
		PageTypes: PageTypeStats{
			Edit:        newTypeStats(),
			Ad:          newTypeStats(),
			Mixed:       MixedTypeStats{TypeStats: newTypeStats()},
			Placeholder: newTypeStats(),
			Unknown:     newTypeStats(),
		},
		FractionalAdSizes: map[string]int{
			string(catalog.SizeQuarter):   0,
			string(catalog.SizeThird):     0,
			string(catalog.SizeHalf):      0,
			string(catalog.SizeTwoThirds): 0,
		},
	}

	var mixedAdFraction float64

	for _, p := range d.Pages() {
		a.TotalPages++

		section := p.Section
		if section == "" {
			section = "Uncategorized"
		}

		switch p.Type {
		case PageEditorial:
			bump(&a.PageTypes.Edit, section)
			a.TotalEditorial++
		case PageAd:
			bump(&a.PageTypes.Ad, section)
			a.TotalAds++
		case PageMixed:
			bump(&a.PageTypes.Mixed.TypeStats, section)

			var adFraction float64
			for _, u := range p.Units {
				a.FractionalAdSizes[string(u.Size)]++
				if u.Type == catalog.ContentAd {
					adFraction += u.Size.Decimal()
				}
			}
			editorialFraction := 1 - adFraction
			if editorialFraction < 0 {
				editorialFraction = 0
			}

			a.TotalAds += adFraction
			a.TotalEditorial += editorialFraction
			mixedAdFraction += adFraction
		case PagePlaceholder:
			bump(&a.PageTypes.Placeholder, section)
		default:
			bump(&a.PageTypes.Unknown, section)
		}
	}

	if n := a.PageTypes.Mixed.Total; n > 0 {
		a.PageTypes.Mixed.AdPercentage = mixedAdFraction / float64(n)
		a.PageTypes.Mixed.EditorialPercentage = 1 - a.PageTypes.Mixed.AdPercentage
	}

	return a
}

func newTypeStats() TypeStats {
	return TypeStats{Sections: map[string]int{}}
}

func bump(s *TypeStats, section string) {
	s.Total++
	s.Sections[section]++
}
