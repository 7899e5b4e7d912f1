package httpapi

import (
	"net/http"
)

type managerRequest struct {
	ManagerID int64 `validate:"gt=0"`
	Gameweek  int   `validate:"gte=0,lte=38"`
}

func (h *Handler) parseManagerRequest(r *http.Request) (managerRequest, error) {
	managerID, err := parseInt64(r.PathValue("managerID"), "managerID", true)
	if err != nil {
		return managerRequest{}, err
	}
	gameweek, err := parseInt(r.URL.Query().Get("gameweek"), "gameweek", false)
	if err != nil {
		return managerRequest{}, err
	}

	req := managerRequest{ManagerID: managerID, Gameweek: gameweek}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return managerRequest{}, err
	}
	return req, nil
}

func (h *Handler) GetManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManager")
	defer span.End()

	req, err := h.parseManagerRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.managerService.Get(ctx, req.ManagerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager failed", "manager_id", req.ManagerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetManagerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerHistory")
	defer span.End()

	req, err := h.parseManagerRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.managerService.History(ctx, req.ManagerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager history failed", "manager_id", req.ManagerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, history)
}

func (h *Handler) GetManagerTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerTeam")
	defer span.End()

	req, err := h.parseManagerRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.managerService.Team(ctx, req.ManagerID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager team failed", "manager_id", req.ManagerID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, team)
}

func (h *Handler) ListManagerTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagerTransfers")
	defer span.End()

	req, err := h.parseManagerRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.managerService.Transfers(ctx, req.ManagerID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "list manager transfers failed", "manager_id", req.ManagerID, "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
