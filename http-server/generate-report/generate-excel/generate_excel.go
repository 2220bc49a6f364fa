package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"flatplan/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, layoutID string) ([]byte, error)
}

// GenerateReportExcel renders the analytics workbook for one layout and
// streams it back as an .xlsx attachment.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		layoutID := r.URL.Query().Get("layout_id")
		if layoutID == "" {
			log.With(slog.String("op", op)).Error("Missing 'layout_id' in query parameters")
			http.Error(w, "Missing required query parameter 'layout_id'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, layoutID)
		if err != nil {
			if errors.Is(err, storage.ErrLayoutNotFound) {
				http.Error(w, "Layout not found", http.StatusNotFound)
				return
			}

			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Flatplan_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
