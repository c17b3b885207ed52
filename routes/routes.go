package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/music-league-system/handlers"
	"github.com/Dosada05/music-league-system/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	leagueHandler *handlers.LeagueHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
	adminJWTSecret []byte,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", leagueHandler.Healthz)

	router.Route("/categories", func(r chi.Router) {
		r.Get("/", leagueHandler.ListCategories)
		r.Get("/{category}/leagues", leagueHandler.ListLeagues)
	})

	router.Route("/leagues", func(r chi.Router) {
		r.Get("/{slug}", leagueHandler.GetLeague)
		r.Get("/{slug}/standings", leagueHandler.GetLeagueStandings)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(adminJWTSecret))
		r.Post("/admin/refresh", leagueHandler.Refresh)
	})

	router.Get("/ws/categories/{category}", webSocketHandler.ServeWs)
}
