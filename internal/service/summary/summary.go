package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type SummaryStorage interface {
	GetLayoutsByAccount(ctx context.Context, accountID string) ([]*storage.Layout, error)
}

type SummaryService struct {
	storage SummaryStorage
}

func NewSummaryService(storage SummaryStorage) *SummaryService {
	return &SummaryService{storage: storage}
}

// PageCounts are the whole-page tallies of one layout.
type PageCounts struct {
	Total       int `json:"total"`
	Editorial   int `json:"editorial"`
	Ads         int `json:"ads"`
	Mixed       int `json:"mixed"`
	Placeholder int `json:"placeholder"`
}

// LayoutSummary is the listing view of one layout: issue metadata plus
// page counts and the fractional editorial/ad totals.
type LayoutSummary struct {
	ID              string     `json:"id"`
	PublicationName string     `json:"publication_name"`
	IssueName       string     `json:"issue_name"`
	PublicationDate string     `json:"publication_date"`
	ModifiedDate    time.Time  `json:"modified_date"`
	PageCounts      PageCounts `json:"page_counts"`
	TotalEditorial  float64    `json:"total_editorial"`
	TotalAds        float64    `json:"total_ads"`
}

// AccountSummaries fetches an account's layouts and computes a summary
// for each, fanning the per-layout work out across goroutines.
func (s *SummaryService) AccountSummaries(ctx context.Context, accountID string) ([]LayoutSummary, error) {
	const op = "service.summary.AccountSummaries"

	layouts, err := s.storage.GetLayoutsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]LayoutSummary, len(layouts))

	g, _ := errgroup.WithContext(ctx)
	for i, doc := range layouts {
		g.Go(func() error {
			summaries[i] = Summarize(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return summaries, nil
}

// Summarize builds the listing summary for one stored layout. Mixed
// pages contribute their advertisement share to TotalAds and the
// remaining space to TotalEditorial; totals are rounded to two decimals
// for display.
func Summarize(doc *storage.Layout) LayoutSummary {
	sum := LayoutSummary{
		ID:              doc.ID,
		PublicationName: doc.PublicationName,
		IssueName:       doc.IssueName,
		PublicationDate: doc.PublicationDate,
		ModifiedDate:    doc.ModifiedDate,
	}

	d, _ := layout.FromRecords(doc.Pages)
	a := layout.ComputeAnalytics(d)

	sum.PageCounts = PageCounts{
		Total:       a.TotalPages,
		Editorial:   a.PageTypes.Edit.Total,
		Ads:         a.PageTypes.Ad.Total,
		Mixed:       a.PageTypes.Mixed.Total,
		Placeholder: a.PageTypes.Placeholder.Total,
	}
	sum.TotalEditorial = round2(a.TotalEditorial)
	sum.TotalAds = round2(a.TotalAds)

	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
