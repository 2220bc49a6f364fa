package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type LayoutProvider interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
}

type ResponseAnalytics struct {
	PublicationName string `json:"publication_name"`
	IssueName       string `json:"issue_name"`
	layout.Analytics
}

// GetAnalytics computes the statistics view of one layout on demand.
// Nothing is cached; the numbers always reflect the stored document.
func GetAnalytics(log *slog.Logger, layouts LayoutProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.analytics.GetAnalytics"

		id := chi.URLParam(r, "layoutID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stored, err := layouts.GetLayout(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				log.With(slog.String("op", op), slog.String("layout_id", id)).Warn("Layout not found")
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("layout_id", id),
				slog.String("error", err.Error()),
			).Error("Failed to fetch layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		doc, _ := layout.FromRecords(stored.Pages)

		render.JSON(w, r, ResponseAnalytics{
			PublicationName: stored.PublicationName,
			IssueName:       stored.IssueName,
			Analytics:       layout.ComputeAnalytics(doc),
		})
	}
}
