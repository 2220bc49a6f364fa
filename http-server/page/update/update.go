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

	"flatplan/internal/catalog"
	"flatplan/internal/editor"
	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type PageStorage interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	UpdateLayoutPages(ctx context.Context, id string, pages []layout.PageRecord) error
}

type unitPatch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
	Type    string `json:"type"`
}

// UpdatePage applies a partial edit to one page: content type, name,
// section, form break, template choice and unit patches, in that order.
// Absent fields are left alone. The whole layout is re-serialized and
// stored after the edit, so the response carries canonical records.
func UpdatePage(log *slog.Logger, layouts PageStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.page.UpdatePage"

		layoutID := chi.URLParam(r, "layoutID")
		pageID := chi.URLParam(r, "pageID")

		var req struct {
			Type                *string     `json:"type"`
			Name                *string     `json:"name"`
			Section             *string     `json:"section"`
			FormBreak           *bool       `json:"form_break"`
			MixedPageTemplateID *int        `json:"mixed_page_template_id"`
			FractionalUnits     []unitPatch `json:"fractional_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

		sess, err := editor.Open(doc, pageID)
		if err != nil {
			http.Error(w, "Page not found", http.StatusNotFound)
			return
		}

		if err := applyEdit(sess, req.Type, req.Name, req.Section, req.FormBreak, req.MixedPageTemplateID, req.FractionalUnits); err != nil {
			status, msg := editStatus(err)
			log.With(
				slog.String("op", op),
				slog.String("page_id", pageID),
				slog.String("error", err.Error()),
			).Warn("Page edit rejected")
			http.Error(w, msg, status)
			return
		}

		records := doc.Records()
		if err := layouts.UpdateLayoutPages(ctx, layoutID, records); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := struct {
			Status string              `json:"status"`
			Layout []layout.PageRecord `json:"layout"`
		}{Status: "updated", Layout: records}
		render.JSON(w, r, resp)
	}
}

func applyEdit(sess *editor.Session, typ, name, section *string, formBreak *bool, templateID *int, units []unitPatch) error {
	if typ != nil {
		if err := sess.SetContentType(*typ); err != nil {
			return err
		}
	}
	if name != nil {
		if err := sess.SetName(*name); err != nil {
			return err
		}
	}
	if section != nil {
		if err := sess.SetSection(*section); err != nil {
			return err
		}
	}
	if formBreak != nil {
		sess.SetFormBreak(*formBreak)
	}
	if templateID != nil {
		if err := sess.ApplyTemplate(*templateID); err != nil {
			return err
		}
	}

	for _, p := range units {
		if err := sess.OpenUnit(p.ID); err != nil {
			return err
		}
		err := sess.UpdateUnit(layout.UnitPatch{
			Name:    p.Name,
			Section: p.Section,
			Type:    catalog.ContentType(p.Type),
		})
		sess.CloseUnit()
		if err != nil {
			return err
		}
	}
	return nil
}

func editStatus(err error) (int, string) {
	switch {
	case errors.Is(err, layout.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, layout.ErrInvalidState):
		return http.StatusConflict, "Edit not allowed in the page's current state"
	default:
		return http.StatusBadRequest, "Invalid page edit"
	}
}

// DeletePage removes one page from a layout.
func DeletePage(log *slog.Logger, layouts PageStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.page.DeletePage"

		layoutID := chi.URLParam(r, "layoutID")
		pageID := chi.URLParam(r, "pageID")

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

		if err := doc.RemovePage(pageID); err != nil {
			if errors.Is(err, layout.ErrInvalidState) {
				http.Error(w, "Page cannot be removed", http.StatusConflict)
				return
			}
			http.Error(w, "Page not found", http.StatusNotFound)
			return
		}

		records := doc.Records()
		if err := layouts.UpdateLayoutPages(ctx, layoutID, records); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := struct {
			Status string              `json:"status"`
			Layout []layout.PageRecord `json:"layout"`
		}{Status: "deleted", Layout: records}
		render.JSON(w, r, resp)
	}
}

// ReorderPages replaces the page order of a layout with the given id
// sequence, which must be a permutation of the current pages.
func ReorderPages(log *slog.Logger, layouts PageStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.page.ReorderPages"

		layoutID := chi.URLParam(r, "layoutID")

		var req struct {
			PageIDs []string `json:"page_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

		if err := doc.Reorder(req.PageIDs); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Reorder rejected")
			http.Error(w, "Page ids are not a permutation of the layout", http.StatusBadRequest)
			return
		}

		records := doc.Records()
		if err := layouts.UpdateLayoutPages(ctx, layoutID, records); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := struct {
			Status string              `json:"status"`
			Layout []layout.PageRecord `json:"layout"`
		}{Status: "reordered", Layout: records}
		render.JSON(w, r, resp)
	}
}
