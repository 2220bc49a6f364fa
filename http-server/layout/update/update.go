package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/storage"
)

type MetadataUpdater interface {
	UpdateLayoutMetadata(ctx context.Context, id string, update storage.LayoutMetadata) error
}

// UpdateLayoutMetadata changes the issue metadata of a layout without
// touching its page array.
func UpdateLayoutMetadata(log *slog.Logger, layouts MetadataUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.UpdateLayoutMetadata"

		id := chi.URLParam(r, "layoutID")

		var req storage.LayoutMetadata
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := layouts.UpdateLayoutMetadata(ctx, id, req); err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				log.With(slog.String("op", op), slog.String("layout_id", id)).Warn("Layout not found")
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("layout_id", id),
				slog.String("error", err.Error()),
			).Error("Failed to update layout metadata")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "updated"})
	}
}
