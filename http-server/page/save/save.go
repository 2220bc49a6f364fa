package save

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/editor"
	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type PageStorage interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error
}

type ResponsePage struct {
	Status string              `json:"status"`
	Page   layout.PageRecord   `json:"page"`
	Layout []layout.PageRecord `json:"layout"`
}

// AddPage appends a page to a layout. The page starts as a placeholder;
// an optional body may set type, name and section in the same request.
// The server generates the page id.
func AddPage(log *slog.Logger, layouts PageStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.page.AddPage"

		layoutID := chi.URLParam(r, "layoutID")

		var req struct {
			Type    string `json:"type"`
			Name    string `json:"name"`
			Section string `json:"section"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stored, err := layouts.GetLayout(ctx, layoutID)
		if err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		doc, warnings := layout.FromRecords(stored.Pages)
		for _, warn := range warnings {
			log.With(slog.String("op", op), slog.String("layout_id", layoutID)).Warn(warn)
		}
		sess := editor.OpenNew(doc)

		if req.Type != "" {
			if err := sess.SetContentType(req.Type); err != nil {
				http.Error(w, "Invalid page type", http.StatusBadRequest)
				return
			}
		}
		if req.Name != "" {
			if err := sess.SetName(req.Name); err != nil {
				http.Error(w, "Invalid page name", http.StatusBadRequest)
				return
			}
		}
		if req.Section != "" {
			if err := sess.SetSection(req.Section); err != nil {
				http.Error(w, "Invalid page section", http.StatusBadRequest)
				return
			}
		}

		records := doc.Records()
		if err := layouts.UpdateLayoutPages(ctx, layoutID, records); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := ResponsePage{Status: "created", Layout: records}
		for _, rec := range records {
			if rec.ID == sess.Page().ID {
				resp.Page = rec
				break
			}
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}
