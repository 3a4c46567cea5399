package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/shoaibhussa1n/Futsal-Connect/handlers"
	"github.com/shoaibhussa1n/Futsal-Connect/middleware"
)

type Handlers struct {
	Profile     *handlers.ProfileHandler
	Player      *handlers.PlayerHandler
	Team        *handlers.TeamHandler
	Match       *handlers.MatchHandler
	Request     *handlers.MatchRequestHandler
	Tournament  *handlers.TournamentHandler
	Invitation  *handlers.InvitationHandler
	Leaderboard *handlers.LeaderboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, auth *middleware.Authenticator, corsOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Public read endpoints.
	router.Get("/leaderboard", h.Leaderboard.GetLeaderboard)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)
		r.Get("/{teamID}/members", h.Team.ListTeamMembers)
		r.Get("/{teamID}/requests", h.Request.ListTeamRequests)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", h.Team.CreateTeam)
			r.Put("/{teamID}", h.Team.UpdateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
			r.Post("/{teamID}/members", h.Team.AddTeamMember)
			r.Delete("/{teamID}/members/{playerID}", h.Team.RemoveTeamMember)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Get("/{playerID}", h.Player.GetPlayerByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", h.Player.CreatePlayer)
			r.Get("/me", h.Player.GetCurrentPlayer)
			r.Put("/me", h.Player.UpdateCurrentPlayer)
			r.Post("/me/photo", h.Player.UploadPhoto)
		})
	})

	router.Route("/profiles", func(r chi.Router) {
		r.Get("/{profileID}", h.Profile.GetProfileByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", h.Profile.CreateProfile)
			r.Get("/me", h.Profile.GetCurrentProfile)
			r.Put("/me", h.Profile.UpdateCurrentProfile)
			r.Post("/me/avatar", h.Profile.UploadAvatar)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatchByID)
		r.Get("/{matchID}/scorers", h.Match.ListMatchScorers)
		r.Get("/{matchID}/live", h.WebSocket.ServeMatchRoom)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{matchID}/result", h.Match.SubmitMatchResult)
			r.Delete("/{matchID}", h.Match.CancelMatch)
		})
	})

	router.Route("/match-requests", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Post("/", h.Request.CreateRequest)
		r.Post("/{requestID}/accept", h.Request.AcceptRequest)
		r.Post("/{requestID}/reject", h.Request.RejectRequest)
		r.Post("/{requestID}/cancel", h.Request.CancelRequest)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Get("/{tournamentID}", h.Tournament.GetTournamentByID)
		r.Get("/{tournamentID}/registrations", h.Tournament.ListRegistrations)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", h.Tournament.CreateTournament)
			r.Post("/{tournamentID}/register", h.Tournament.Register)
		})
	})

	router.Route("/invitations", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Post("/", h.Invitation.CreateInvitation)
		r.Get("/me", h.Invitation.ListMyInvitations)
		r.Post("/{invitationID}/accept", h.Invitation.AcceptInvitation)
		r.Post("/{invitationID}/reject", h.Invitation.RejectInvitation)
	})

	return router
}
