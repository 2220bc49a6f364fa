package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/storage"
)

type SharedLayoutProvider interface {
	GetSharedAccess(ctx context.Context, layoutID, accessCode string) (*storage.SharedAccess, error)
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
}

// GetSharedLayout serves the read-only view of a shared layout. The
// access code must match a stored grant for this layout; a wrong code
// gets the same 404 as a missing layout, so codes cannot be probed
// apart from layouts.
func GetSharedLayout(log *slog.Logger, layouts SharedLayoutProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.share.GetSharedLayout"

		layoutID := chi.URLParam(r, "layoutID")

		code := r.URL.Query().Get("code")
		if code == "" {
			log.With(slog.String("op", op)).Error("Missing 'code' in query parameters")
			http.Error(w, "Missing required query parameter 'code'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if _, err := layouts.GetSharedAccess(ctx, layoutID, code); err != nil {
			if errors.Is(err, storage.ErrSharedAccessNotFound) {
				log.With(slog.String("op", op), slog.String("layout_id", layoutID)).Warn("Access code rejected")
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to check shared access")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		doc, err := layouts.GetLayout(ctx, layoutID)
		if err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, doc)
	}
}
