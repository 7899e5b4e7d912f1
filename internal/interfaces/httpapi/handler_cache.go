package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analytics/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const maxInternalBodyBytes = 64 << 10

type warmCacheRequest struct {
	LeagueIDs []int64 `json:"league_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

func (h *Handler) WarmCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WarmCache")
	defer span.End()

	req, err := decodeWarmCacheRequest(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(req.LeagueIDs) == 0 {
		req.LeagueIDs = append([]int64(nil), h.warmLeagueIDs...)
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.cacheWarmer.Warm(ctx, req.LeagueIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "warm cache failed", "league_ids", req.LeagueIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) FlushCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FlushCache")
	defer span.End()

	if h.cache == nil || !h.cache.FlushAll(ctx) {
		writeError(ctx, w, fmt.Errorf("%w: cache flush failed", usecase.ErrDependencyUnavailable))
		return
	}

	h.logger.InfoContext(ctx, "cache flushed")
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"flushed": true})
}

type leagueCacheEviction struct {
	LeagueID int64 `json:"league_id"`
	Keys     int   `json:"keys"`
}

func (h *Handler) InvalidateLeagueCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateLeagueCache")
	defer span.End()

	req, err := h.parseLeagueRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if h.leagueCache == nil {
		writeError(ctx, w, fmt.Errorf("%w: league cache invalidation is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	keys := h.leagueCache.InvalidateLeague(ctx, req.LeagueID)
	writeSuccess(ctx, w, http.StatusOK, leagueCacheEviction{LeagueID: req.LeagueID, Keys: keys})
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

func decodeWarmCacheRequest(w http.ResponseWriter, r *http.Request) (warmCacheRequest, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxInternalBodyBytes)); err != nil {
		return warmCacheRequest{}, fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}

	var req warmCacheRequest
	if len(bytes.TrimSpace(buf.B)) == 0 {
		return req, nil
	}
	if err := strictJSON.Unmarshal(buf.B, &req); err != nil {
		return warmCacheRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
