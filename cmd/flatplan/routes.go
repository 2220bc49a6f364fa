package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getanalytics "flatplan/http-server/analytics/get"
	generate_excel "flatplan/http-server/generate-report/generate-excel"
	deletelayout "flatplan/http-server/layout/delete"
	getlayout "flatplan/http-server/layout/get"
	savelayout "flatplan/http-server/layout/save"
	uplayout "flatplan/http-server/layout/update"
	savepage "flatplan/http-server/page/save"
	uppage "flatplan/http-server/page/update"
	getshare "flatplan/http-server/share/get"
	saveshare "flatplan/http-server/share/save"
	gettemplate "flatplan/http-server/template/get"
	"flatplan/internal/config"
	"flatplan/internal/middleware/auth"
	"flatplan/internal/service/report"
	"flatplan/internal/service/summary"
	"flatplan/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, summaries *summary.SummaryService, reports *report.ReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Layouts
	router.Get("/api/layouts", getlayout.GetAccountLayouts(log, summaries))
	router.Post("/api/layouts", savelayout.CreateLayout(log, storage))
	router.Get("/api/layouts/{layoutID}", getlayout.GetLayout(log, storage))
	router.Post("/api/layouts/{layoutID}", savelayout.SaveLayoutContent(log, storage))
	router.Put("/api/layouts/{layoutID}/metadata", uplayout.UpdateLayoutMetadata(log, storage))
	router.Delete("/api/layouts/{layoutID}", deletelayout.DeleteLayout(log, storage))
	router.Post("/api/layouts/{layoutID}/clone", savelayout.CloneLayout(log, storage))

	// Pages
	router.Post("/api/layouts/{layoutID}/pages", savepage.AddPage(log, storage))
	router.Put("/api/layouts/{layoutID}/pages/order", uppage.ReorderPages(log, storage))
	router.Put("/api/layouts/{layoutID}/pages/{pageID}", uppage.UpdatePage(log, storage))
	router.Delete("/api/layouts/{layoutID}/pages/{pageID}", uppage.DeletePage(log, storage))

	// Analytics and exports
	router.Get("/api/layouts/{layoutID}/analytics", getanalytics.GetAnalytics(log, storage))
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, reports))

	// Template catalog
	router.Get("/api/templates", gettemplate.GetTemplates(log))

	// Sharing
	router.Post("/api/layouts/{layoutID}/share", saveshare.CreateShare(log, storage))
	router.Get("/api/shared/{layoutID}", getshare.GetSharedLayout(log, storage))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/layouts", getlayout.GetAllLayoutsAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Static frontend. The backend also serves the built SPA; when the
	// dist folder is absent the API still comes up.
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dist not found, serving API only", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: any other path serves index.html.
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
