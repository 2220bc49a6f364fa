package delete

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

type LayoutDeleter interface {
	DeleteLayout(ctx context.Context, id string) error
}

func DeleteLayout(log *slog.Logger, layouts LayoutDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.DeleteLayout"

		id := chi.URLParam(r, "layoutID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := layouts.DeleteLayout(ctx, id); err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				log.With(slog.String("op", op), slog.String("layout_id", id)).Warn("Layout not found")
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("layout_id", id),
				slog.String("error", err.Error()),
			).Error("Failed to delete layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "deleted"})
	}
}
