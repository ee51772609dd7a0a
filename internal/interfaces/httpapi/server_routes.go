package httpapi

import (
	"net/http"

	"github.com/riskibarqy/roadto100k/internal/observability"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics *observability.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/challenge", handler.GetChallenge)
	mux.HandleFunc("GET /v1/participants", handler.ListParticipants)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/history", handler.GetHistory)
	mux.Handle("GET /v1/pacing", OptionalAuth(verifier, http.HandlerFunc(handler.GetPacing)))
	mux.Handle("GET /v1/dashboard", OptionalAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /v1/me/entries", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEntries)))
	mux.Handle("POST /v1/challenge/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptChallenge)))
	mux.Handle("POST /v1/entries", RequireAuth(verifier, http.HandlerFunc(handler.AddEntry)))
}
