package fplapi

import (
	"context"
	"encoding/json"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analytics/internal/domain/manager"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
)

func LeagueStandingsPath(leagueID int64) string {
	return "/leagues-classic/" + strconv.FormatInt(leagueID, 10) + "/standings/"
}

func EntryHistoryPath(entryID int64) string {
	return "/entry/" + strconv.FormatInt(entryID, 10) + "/history/"
}

func EntryPath(entryID int64) string {
	return "/entry/" + strconv.FormatInt(entryID, 10) + "/"
}

func EntryPicksPath(entryID int64, gameweek int) string {
	return "/entry/" + strconv.FormatInt(entryID, 10) + "/event/" + strconv.Itoa(gameweek) + "/picks/"
}

func EntryTransfersPath(entryID int64) string {
	return "/entry/" + strconv.FormatInt(entryID, 10) + "/transfers/"
}

func EventLivePath(gameweek int) string {
	return "/event/" + strconv.Itoa(gameweek) + "/live/"
}

// FixturesPath returns all fixtures for gameweek <= 0, else only that event's.
func FixturesPath(gameweek int) string {
	if gameweek <= 0 {
		return "/fixtures/"
	}
	return "/fixtures/?event=" + strconv.Itoa(gameweek)
}

const bootstrapStaticPath = "/bootstrap-static/"

func (f *Fetcher) LeagueStandings(ctx context.Context, leagueID int64) (standings.Snapshot, bool) {
	var out standings.Snapshot
	if !f.fetchInto(ctx, LeagueStandingsPath(leagueID), &out) {
		return standings.Snapshot{}, false
	}
	return out, true
}

func (f *Fetcher) EntryHistory(ctx context.Context, entryID int64) (standings.EntryHistory, bool) {
	var out standings.EntryHistory
	if !f.fetchInto(ctx, EntryHistoryPath(entryID), &out) {
		return standings.EntryHistory{}, false
	}
	return out, true
}

// CurrentEvent reads the is_current event id from bootstrap-static. Before the season
// starts no event is current and gameweek 1 is reported. ok is false only when
// bootstrap-static could not be read.
func (f *Fetcher) CurrentEvent(ctx context.Context) (int, bool) {
	var payload struct {
		Events []struct {
			ID        int  `json:"id"`
			IsCurrent bool `json:"is_current"`
		} `json:"events"`
	}
	raw, ok := f.BootstrapStatic(ctx)
	if !ok {
		return 0, false
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		f.logger.WarnContext(ctx, "bootstrap-static decode failed", "error", err)
		return 0, false
	}
	for _, event := range payload.Events {
		if event.IsCurrent {
			return event.ID, true
		}
	}
	return 1, true
}

func (f *Fetcher) EntryTransfers(ctx context.Context, entryID int64) ([]manager.Transfer, bool) {
	var out []manager.Transfer
	if !f.fetchInto(ctx, EntryTransfersPath(entryID), &out) {
		return nil, false
	}
	return out, true
}

// BootstrapStatic returns the season overview: events, teams and players.
func (f *Fetcher) BootstrapStatic(ctx context.Context) (json.RawMessage, bool) {
	return f.Fetch(ctx, bootstrapStaticPath)
}

func (f *Fetcher) Entry(ctx context.Context, entryID int64) (json.RawMessage, bool) {
	return f.Fetch(ctx, EntryPath(entryID))
}

func (f *Fetcher) EntryPicks(ctx context.Context, entryID int64, gameweek int) (json.RawMessage, bool) {
	return f.Fetch(ctx, EntryPicksPath(entryID, gameweek))
}

func (f *Fetcher) EventLive(ctx context.Context, gameweek int) (json.RawMessage, bool) {
	return f.Fetch(ctx, EventLivePath(gameweek))
}

func (f *Fetcher) Fixtures(ctx context.Context, gameweek int) (json.RawMessage, bool) {
	return f.Fetch(ctx, FixturesPath(gameweek))
}

// EntryCaptain returns the element the entry captained in gameweek.
func (f *Fetcher) EntryCaptain(ctx context.Context, entryID int64, gameweek int) (int, bool) {
	var payload struct {
		Picks []struct {
			Element   int  `json:"element"`
			IsCaptain bool `json:"is_captain"`
		} `json:"picks"`
	}
	if !f.fetchInto(ctx, EntryPicksPath(entryID, gameweek), &payload) {
		return 0, false
	}
	for _, pick := range payload.Picks {
		if pick.IsCaptain {
			return pick.Element, true
		}
	}
	return 0, false
}
