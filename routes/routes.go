package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/sinuca-cup/handlers"
	"github.com/Dosada05/sinuca-cup/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/sinuca-cup/docs"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Edition    *handlers.EditionHandler
	Pairing    *handlers.PairingHandler
	Match      *handlers.MatchHandler
	Settlement *handlers.SettlementHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket живёт вне таймаута, иначе соединение оборвётся через минуту.
	router.Get("/ws/editions/{editionID}", h.WebSocket.ServeWs)

	authenticated := middleware.Authenticate(opts.JWTSecret)
	adminOnly := middleware.Authorize(middleware.RoleAdmin)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/auth/login", h.Auth.Login)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayers)
			r.Get("/{playerID}", h.Player.GetPlayer)

			r.Group(func(r chi.Router) {
				r.Use(authenticated, adminOnly)
				r.Post("/", h.Player.RegisterPlayer)
				r.Patch("/{playerID}", h.Player.UpdatePlayer)
				r.Delete("/{playerID}", h.Player.DeactivatePlayer)
				r.Post("/{playerID}/photo", h.Player.UploadPhoto)
			})
		})

		r.Route("/ranking", func(r chi.Router) {
			r.Get("/", h.Player.Ranking)
			r.Get("/podium", h.Player.Podium)
			r.Get("/stats", h.Player.Stats)
		})

		r.Route("/editions", func(r chi.Router) {
			r.Get("/", h.Edition.ListEditions)
			r.Get("/next-number", h.Edition.NextNumber)
			r.With(authenticated, adminOnly).Post("/", h.Edition.CreateEdition)

			r.Route("/{editionID}", func(r chi.Router) {
				r.Get("/", h.Edition.GetEdition)
				r.Get("/overview", h.Edition.Overview)
				r.Get("/enrollments", h.Edition.ListEnrolled)
				r.Get("/available-players", h.Edition.AvailablePlayers)
				r.Get("/pairs", h.Pairing.ListPairs)
				r.Get("/matches", h.Match.ListMatches)
				r.Get("/matches/{matchID}", h.Match.GetMatch)

				r.Group(func(r chi.Router) {
					r.Use(authenticated, adminOnly)

					r.Patch("/status", h.Edition.ChangeStatus)
					r.Post("/enrollments", h.Edition.Enroll)
					r.Delete("/enrollments/{playerID}", h.Edition.Unenroll)

					r.Post("/pairs", h.Pairing.CreatePair)
					r.Post("/pairs/auto", h.Pairing.AutoPair)
					r.Post("/pairs/swap", h.Pairing.SwapPlayers)
					r.Put("/pairs/order", h.Pairing.ReorderPairs)
					r.Delete("/pairs/{pairID}", h.Pairing.DeletePair)

					r.Post("/bracket", h.Match.GenerateBracket)
					r.Post("/matches/{matchID}/winner", h.Match.RegisterWinner)
					r.Post("/matches/{matchID}/correction/impact", h.Match.CorrectionImpact)
					r.Post("/matches/{matchID}/correction", h.Match.CorrectResult)
					r.Post("/phases/{phase}/advance", h.Match.AdvancePhase)

					r.Post("/settle", h.Settlement.Settle)
				})
			})
		})
	})
}
