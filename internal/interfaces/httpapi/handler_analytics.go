package httpapi

import (
	"net/http"
)

type compareManagersRequest struct {
	Manager1ID    int64 `validate:"gt=0"`
	Manager2ID    int64 `validate:"gt=0,nefield=Manager1ID"`
	GameweekStart int   `validate:"gte=0,lte=38"`
	GameweekEnd   int   `validate:"gte=0,lte=38"`
}

func (h *Handler) GetLeagueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSummary")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.analyticsService.LeagueSummary(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get league summary failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetLeagueTransferTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTransferTrends")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trends, err := h.analyticsService.TransferTrends(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get league transfer trends failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trends)
}

func (h *Handler) GetLeagueCaptaincy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueCaptaincy")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.analyticsService.Captaincy(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get league captaincy failed", "league_id", req.LeagueID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) CompareManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareManagers")
	defer span.End()

	query := r.URL.Query()
	var req compareManagersRequest
	var err error
	if req.Manager1ID, err = parseInt64(query.Get("manager1"), "manager1", true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Manager2ID, err = parseInt64(query.Get("manager2"), "manager2", true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.GameweekStart, err = parseInt(query.Get("gameweek_start"), "gameweek_start", false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.GameweekEnd, err = parseInt(query.Get("gameweek_end"), "gameweek_end", false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.analyticsService.CompareManagers(ctx, req.Manager1ID, req.Manager2ID, req.GameweekStart, req.GameweekEnd)
	if err != nil {
		h.logger.WarnContext(ctx, "compare managers failed",
			"manager1", req.Manager1ID,
			"manager2", req.Manager2ID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}
