package api

import (
	"context"
	"log"
	"net/http"
	"text_trans_api/config"
	"text_trans_api/pkg/logger"
	"text_trans_api/pkg/rds"
	"text_trans_api/pkg/tasks"
	authapi "text_trans_api/service/api/auth"
	"text_trans_api/service/api/document"
	"text_trans_api/service/api/middleware/auth"
	"text_trans_api/service/api/translate"
	"text_trans_api/service/api/user/documents"
	"text_trans_api/service/api/user/history"
	"text_trans_api/service/api/user/plan"
	"text_trans_api/service/api/user/profile"
	"text_trans_api/service/api/user/usage"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

func Run() {
	if err := rds.Ping(context.Background()); err != nil {
		log.Fatalf("failed to ping redis, error: %v", err)
	}
	defer rds.Close()
	go rds.LogStats()

	// queue close
	defer tasks.AsynqClient.Close()

	// Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	// Basic CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "access_token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public translation api. Quota identity is the user when a token
	// is presented, the caller's IP otherwise.
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalUser())
			r.Post("/translate", translate.TranslateOne)
			r.Post("/detect-language", translate.DetectLanguage)
			r.Post("/extract-text", document.ExtractText)
			r.Post("/generate-document", document.GenerateDocument)
		})
		r.Get("/languages", translate.GetSupportedLanguages)
		r.Post("/auth/signup", authapi.Signup)
	})

	r.Get("/auth/callback", authapi.Callback)

	// Account area
	r.Route("/user", func(r chi.Router) {
		r.Use(auth.RequireUser())

		r.Get("/profile", profile.GetProfile)
		r.Put("/profile", profile.UpdateProfile)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", history.GetHistory)
			r.Delete("/{id}", history.DeleteById)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documents.GetDocuments)
			r.Post("/translate", document.CreateJob)
			r.Get("/jobs/{id}", document.GetJob)
		})

		r.Get("/current_plan", plan.CurrentPlan)
		r.Get("/usage", usage.GetCurrentUsage)
	})

	logger.Logger.Info("api listening", "addr", config.Cfg.Server.Addr)
	if err := http.ListenAndServe(config.Cfg.Server.Addr, r); err != nil {
		log.Fatalf("server stopped, error: %v", err)
	}
}
