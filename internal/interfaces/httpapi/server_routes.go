package httpapi

import "net/http"

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/history", handler.GetLeagueHistory)

	mux.HandleFunc("GET /v1/managers/{managerID}", handler.GetManager)
	mux.HandleFunc("GET /v1/managers/{managerID}/history", handler.GetManagerHistory)
	mux.HandleFunc("GET /v1/managers/{managerID}/team", handler.GetManagerTeam)
	mux.HandleFunc("GET /v1/managers/{managerID}/transfers", handler.ListManagerTransfers)

	mux.HandleFunc("GET /v1/gameweeks/{gameweek}/live", handler.GetGameweekLive)
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)

	mux.HandleFunc("GET /v1/analytics/leagues/{leagueID}/summary", handler.GetLeagueSummary)
	mux.HandleFunc("GET /v1/analytics/leagues/{leagueID}/transfers", handler.GetLeagueTransferTrends)
	mux.HandleFunc("GET /v1/analytics/leagues/{leagueID}/captaincy", handler.GetLeagueCaptaincy)
	mux.HandleFunc("GET /v1/analytics/managers/compare", handler.CompareManagers)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/internal/cache/warm", RequireInternalToken(internalToken, http.HandlerFunc(handler.WarmCache)))
	mux.Handle("DELETE /v1/internal/cache", RequireInternalToken(internalToken, http.HandlerFunc(handler.FlushCache)))
	mux.Handle("DELETE /v1/internal/cache/leagues/{leagueID}", RequireInternalToken(internalToken, http.HandlerFunc(handler.InvalidateLeagueCache)))
}
