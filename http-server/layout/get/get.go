package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/service/summary"
	"flatplan/internal/storage"
)

type LayoutProvider interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	GetAllLayouts(ctx context.Context) ([]*storage.Layout, error)
}

type SummaryProvider interface {
	AccountSummaries(ctx context.Context, accountID string) ([]summary.LayoutSummary, error)
}

// GetLayout returns one full layout document, page array included.
func GetLayout(log *slog.Logger, layouts LayoutProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.GetLayout"

		id := chi.URLParam(r, "layoutID")
		if id == "" {
			log.With(slog.String("op", op)).Error("Missing layout id in path")
			http.Error(w, "Missing layout id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		doc, err := layouts.GetLayout(ctx, id)
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

		render.JSON(w, r, doc)
	}
}

type ResponseAccountLayouts struct {
	Layouts []summary.LayoutSummary `json:"layouts"`
}

// GetAccountLayouts lists an account's layouts with their summaries for
// the dashboard view.
func GetAccountLayouts(log *slog.Logger, summaries SummaryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.GetAccountLayouts"

		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			log.With(slog.String("op", op)).Error("Missing 'account_id' in query parameters")
			http.Error(w, "Missing required query parameter 'account_id'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := summaries.AccountSummaries(ctx, accountID)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to list layouts")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []summary.LayoutSummary{}
		}

		render.JSON(w, r, ResponseAccountLayouts{Layouts: list})
	}
}

type ResponseAllLayouts struct {
	Layouts []*storage.Layout
	Error   string
}

func GetAllLayoutsAdmin(log *slog.Logger, layouts LayoutProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.GetAllLayoutsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		all, err := layouts.GetAllLayouts(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch layouts")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseAllLayouts{Layouts: all, Error: ""})
	}
}
