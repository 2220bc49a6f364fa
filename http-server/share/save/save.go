package save

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"flatplan/internal/storage"
)

type ShareStorage interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
	CreateSharedAccess(ctx context.Context, access storage.SharedAccess) error
}

// CreateShare issues a read-only access code for a layout. The code is
// handed back to the caller; distributing it is the caller's problem.
func CreateShare(log *slog.Logger, layouts ShareStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.share.CreateShare"

		layoutID := chi.URLParam(r, "layoutID")

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.Email == "" {
			log.With(slog.String("op", op)).Error("Missing 'email' in request body")
			http.Error(w, "Missing required field 'email'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if _, err := layouts.GetLayout(ctx, layoutID); err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch layout")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		code, err := newAccessCode()
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to generate access code")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		err = layouts.CreateSharedAccess(ctx, storage.SharedAccess{
			LayoutID:   layoutID,
			Email:      req.Email,
			AccessCode: code,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to store shared access")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]string{"status": "shared", "access_code": code})
	}
}

// newAccessCode returns a 6-character hex code.
func newAccessCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
