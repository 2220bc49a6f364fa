package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"flatplan/internal/catalog"
)

type ResponseTemplates struct {
	Templates []catalog.Template `json:"templates"`
}

// GetTemplates exports the mixed-page template catalog for the editor's
// template picker. The catalog is compile-time fixed, so there is no
// storage dependency here.
func GetTemplates(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ResponseTemplates{Templates: catalog.All()})
	}
}
