package httpapi

import (
	"net/http"
)

type leagueRequest struct {
	LeagueID int64 `validate:"gt=0"`
	Gameweek int   `validate:"gte=0,lte=38"`
}

func (h *Handler) parseLeagueRequest(r *http.Request) (leagueRequest, error) {
	leagueID, err := parseInt64(r.PathValue("leagueID"), "leagueID", true)
	if err != nil {
		return leagueRequest{}, err
	}
	gameweek, err := parseInt(r.URL.Query().Get("gameweek"), "gameweek", false)
	if err != nil {
		return leagueRequest{}, err
	}

	req := leagueRequest{LeagueID: leagueID, Gameweek: gameweek}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return leagueRequest{}, err
	}
	return req, nil
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	league, err := h.leagueService.Get(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, league)
}

// GetLeagueStandings serves the live table, or a reconstruction when ?gameweek is set.
func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.standingsService.ForGameweek(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get league standings failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}

func (h *Handler) GetLeagueHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueHistory")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.standingsService.History(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league history failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
