package httpapi

import (
	"net/http"
)

type gameweekRequest struct {
	Gameweek int `validate:"gte=0,lte=38"`
}

func (h *Handler) GetGameweekLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekLive")
	defer span.End()

	gameweek, err := parseInt(r.PathValue("gameweek"), "gameweek", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, gameweekRequest{Gameweek: gameweek}); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.gameweekService.Live(ctx, gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek live failed", "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, live)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	gameweek, err := parseInt(r.URL.Query().Get("gameweek"), "gameweek", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, gameweekRequest{Gameweek: gameweek}); err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.gameweekService.Fixtures(ctx, gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "gameweek", gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtures)
}
