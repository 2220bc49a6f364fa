package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type LayoutCreator interface {
	CreateLayout(ctx context.Context, res storage.NewLayout) (string, error)
}

type LayoutSaver interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error
}

type LayoutCloner interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	CreateLayout(ctx context.Context, res storage.NewLayout) (string, error)
}

// CreateLayout creates an empty layout for an account.
func CreateLayout(log *slog.Logger, layouts LayoutCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.CreateLayout"

		var req struct {
			AccountID       string `json:"account_id"`
			PublicationName string `json:"publication_name"`
			IssueName       string `json:"issue_name"`
			PublicationDate string `json:"publication_date"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.AccountID == "" {
			log.With(slog.String("op", op)).Error("Missing 'account_id' in request body")
			http.Error(w, "Missing required field 'account_id'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := layouts.CreateLayout(ctx, storage.NewLayout{
			AccountID:       req.AccountID,
			PublicationName: req.PublicationName,
			IssueName:       req.IssueName,
			PublicationDate: req.PublicationDate,
			Pages:           layout.NewDocument().Records(),
		})
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to create layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]string{"id": id, "status": "created"})
	}
}

type ResponseSave struct {
	Status   string              `json:"status"`
	Layout   []layout.PageRecord `json:"layout"`
	Warnings []string            `json:"warnings,omitempty"`
}

// SaveLayoutContent replaces the layout's page array with the editor's
// save payload. The payload goes through a load-and-reserialize round
// trip before it is stored, so page numbers, fixed names and fractional
// data are canonical on disk whatever the client sent. Malformed pages
// are coerced, not rejected; the collected warnings ride back on the
// response.
func SaveLayoutContent(log *slog.Logger, layouts LayoutSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.SaveLayoutContent"

		id := chi.URLParam(r, "layoutID")

		var req struct {
			Layout []layout.PageRecord `json:"layout"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		doc, warnings := layout.FromRecords(req.Layout)
		for _, warn := range warnings {
			log.With(slog.String("op", op), slog.String("layout_id", id)).Warn(warn)
		}
		records := doc.Records()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := layouts.UpdateLayoutPages(ctx, id, records); err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("layout_id", id),
				slog.String("error", err.Error()),
			).Error("Failed to save layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseSave{Status: "saved", Layout: records, Warnings: warnings})
	}
}

// CloneLayout copies an existing layout into a new one under the same
// account, marking the issue name with a " (Clone)" suffix.
func CloneLayout(log *slog.Logger, layouts LayoutCloner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.layout.CloneLayout"

		id := chi.URLParam(r, "layoutID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		src, err := layouts.GetLayout(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		newID, err := layouts.CreateLayout(ctx, storage.NewLayout{
			AccountID:       src.AccountID,
			PublicationName: src.PublicationName,
			IssueName:       src.IssueName + " (Clone)",
			PublicationDate: src.PublicationDate,
			Pages:           src.Pages,
		})
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to clone layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]string{"id": newID, "status": "cloned"})
	}
}
