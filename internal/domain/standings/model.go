package standings

import "encoding/json"

// Snapshot mirrors the upstream classic-league standings payload. League and NewEntries are
// passed through untouched so live and reconstructed snapshots share one shape.
type Snapshot struct {
	League     json.RawMessage `json:"league"`
	Standings  Page            `json:"standings"`
	NewEntries json.RawMessage `json:"new_entries"`
}

type Page struct {
	HasNext bool    `json:"has_next"`
	Page    int     `json:"page"`
	Results []Entry `json:"results"`
}

// Entry is one row of a league table.
type Entry struct {
	ID         int64  `json:"id"`
	EventTotal int    `json:"event_total"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	RankSort   int    `json:"rank_sort"`
	Total      int    `json:"total"`
	EntryID    int64  `json:"entry"`
	EntryName  string `json:"entry_name"`
	HasPlayed  bool   `json:"has_played"`
}

// EntryIDs returns the roster in table order.
func (s Snapshot) EntryIDs() []int64 {
	out := make([]int64, 0, len(s.Standings.Results))
	for _, item := range s.Standings.Results {
		out = append(out, item.EntryID)
	}
	return out
}

// MemberHistory is one league member's season curve.
type MemberHistory struct {
	EntryID    int64            `json:"entry"`
	EntryName  string           `json:"entry_name"`
	PlayerName string           `json:"player_name"`
	Gameweeks  []GameweekRecord `json:"gameweeks"`
}

// EntryHistory is the per-entry season curve from /entry/{id}/history/.
type EntryHistory struct {
	Current []GameweekRecord `json:"current"`
	Past    json.RawMessage  `json:"past"`
	Chips   json.RawMessage  `json:"chips"`
}

type GameweekRecord struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	RankSort           int `json:"rank_sort"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

// Gameweek returns the record for 1-based gameweek n by position, not by the event field.
// ok is false when the season had not reached n for this entry.
func (h EntryHistory) Gameweek(n int) (GameweekRecord, bool) {
	if n < 1 || len(h.Current) < n {
		return GameweekRecord{}, false
	}
	return h.Current[n-1], true
}

// Between returns records with from <= event <= to. Zero bounds are open.
func (h EntryHistory) Between(from, to int) []GameweekRecord {
	out := make([]GameweekRecord, 0, len(h.Current))
	for _, item := range h.Current {
		if from > 0 && item.Event < from {
			continue
		}
		if to > 0 && item.Event > to {
			continue
		}
		out = append(out, item)
	}
	return out
}
