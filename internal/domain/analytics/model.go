// Package analytics holds the pure aggregations behind the analytics endpoints.
package analytics

import (
	"math"
	"sort"

	"github.com/riskibarqy/fpl-analytics/internal/domain/manager"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
)

type LeagueSummary struct {
	LeagueID      int64   `json:"league_id"`
	Gameweek      int     `json:"gameweek,omitempty"`
	TotalManagers int     `json:"total_managers"`
	AveragePoints float64 `json:"average_points"`
	HighestPoints int     `json:"highest_points"`
	LowestPoints  int     `json:"lowest_points"`
	TopEntry      int64   `json:"top_entry,omitempty"`
}

// Summarize aggregates event_total over the table rows.
func Summarize(leagueID int64, gameweek int, rows []standings.Entry) LeagueSummary {
	out := LeagueSummary{LeagueID: leagueID, Gameweek: gameweek, TotalManagers: len(rows)}
	if len(rows) == 0 {
		return out
	}

	sum := 0
	out.HighestPoints = rows[0].EventTotal
	out.LowestPoints = rows[0].EventTotal
	out.TopEntry = rows[0].EntryID
	for _, row := range rows {
		sum += row.EventTotal
		if row.EventTotal > out.HighestPoints {
			out.HighestPoints = row.EventTotal
			out.TopEntry = row.EntryID
		}
		if row.EventTotal < out.LowestPoints {
			out.LowestPoints = row.EventTotal
		}
	}
	out.AveragePoints = round2(float64(sum) / float64(len(rows)))
	return out
}

type PointsPair struct {
	Manager1 int `json:"manager1"`
	Manager2 int `json:"manager2"`
}

type AveragePair struct {
	Manager1 float64 `json:"manager1"`
	Manager2 float64 `json:"manager2"`
}

type HeadToHead struct {
	Manager1Wins int `json:"manager1_wins"`
	Manager2Wins int `json:"manager2_wins"`
	Draws        int `json:"draws"`
}

type Comparison struct {
	Manager1ID    int64       `json:"manager1_id"`
	Manager2ID    int64       `json:"manager2_id"`
	GameweekStart int         `json:"gameweek_start,omitempty"`
	GameweekEnd   int         `json:"gameweek_end,omitempty"`
	TotalPoints   PointsPair  `json:"total_points_comparison"`
	AveragePoints AveragePair `json:"average_points_comparison"`
	HeadToHead    HeadToHead  `json:"head_to_head_record"`
}

// Compare sums per-gameweek points of both entries over [from, to] (zero bounds open).
// Head-to-head only counts gameweeks both entries played.
func Compare(id1 int64, h1 standings.EntryHistory, id2 int64, h2 standings.EntryHistory, from, to int) Comparison {
	gw1 := h1.Between(from, to)
	gw2 := h2.Between(from, to)

	out := Comparison{
		Manager1ID:    id1,
		Manager2ID:    id2,
		GameweekStart: from,
		GameweekEnd:   to,
	}
	out.TotalPoints.Manager1 = sumPoints(gw1)
	out.TotalPoints.Manager2 = sumPoints(gw2)
	out.AveragePoints.Manager1 = average(out.TotalPoints.Manager1, len(gw1))
	out.AveragePoints.Manager2 = average(out.TotalPoints.Manager2, len(gw2))

	byEvent := make(map[int]int, len(gw2))
	for _, item := range gw2 {
		byEvent[item.Event] = item.Points
	}
	for _, item := range gw1 {
		other, ok := byEvent[item.Event]
		if !ok {
			continue
		}
		switch {
		case item.Points > other:
			out.HeadToHead.Manager1Wins++
		case item.Points < other:
			out.HeadToHead.Manager2Wins++
		default:
			out.HeadToHead.Draws++
		}
	}
	return out
}

type ElementCount struct {
	Element int `json:"element"`
	Count   int `json:"count"`
}

type TransferTrends struct {
	LeagueID                   int64          `json:"league_id"`
	Gameweek                   int            `json:"gameweek,omitempty"`
	MostTransferredIn          []ElementCount `json:"most_transferred_in"`
	MostTransferredOut         []ElementCount `json:"most_transferred_out"`
	TotalTransfers             int            `json:"total_transfers"`
	AverageTransfersPerManager float64        `json:"average_transfers_per_manager"`
}

const trendLimit = 5

// Trends counts transfers per element across managers. managers is the number of
// managers whose transfer log was read, including those with no transfers.
func Trends(leagueID int64, gameweek int, managers int, transfers []manager.Transfer) TransferTrends {
	in := make(map[int]int)
	out := make(map[int]int)
	for _, item := range transfers {
		in[item.ElementIn]++
		out[item.ElementOut]++
	}
	return TransferTrends{
		LeagueID:                   leagueID,
		Gameweek:                   gameweek,
		MostTransferredIn:          topCounts(in, trendLimit),
		MostTransferredOut:         topCounts(out, trendLimit),
		TotalTransfers:             len(transfers),
		AverageTransfersPerManager: average(len(transfers), managers),
	}
}

type CaptaincySummary struct {
	LeagueID       int64          `json:"league_id"`
	Gameweek       int            `json:"gameweek"`
	ManagersRead   int            `json:"managers_read"`
	CaptainChoices []ElementCount `json:"captain_choices"`
	MostPopular    *ElementCount  `json:"most_popular_captain,omitempty"`
	Differentials  []ElementCount `json:"differential_captains"`
}

// Captaincy ranks captain picks. An element is a differential when fewer than
// a tenth of the managers read captained it.
func Captaincy(leagueID int64, gameweek int, captains []int) CaptaincySummary {
	counts := make(map[int]int)
	for _, element := range captains {
		counts[element]++
	}
	choices := topCounts(counts, 0)

	out := CaptaincySummary{
		LeagueID:       leagueID,
		Gameweek:       gameweek,
		ManagersRead:   len(captains),
		CaptainChoices: choices,
		Differentials:  make([]ElementCount, 0),
	}
	if len(choices) > 0 {
		top := choices[0]
		out.MostPopular = &top
	}
	for _, choice := range choices {
		if float64(choice.Count) < float64(len(captains))/10 {
			out.Differentials = append(out.Differentials, choice)
		}
	}
	return out
}

// topCounts orders by count desc, then element asc. limit <= 0 keeps all.
func topCounts(counts map[int]int, limit int) []ElementCount {
	out := make([]ElementCount, 0, len(counts))
	for element, count := range counts {
		out = append(out, ElementCount{Element: element, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Element < out[j].Element
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sumPoints(items []standings.GameweekRecord) int {
	total := 0
	for _, item := range items {
		total += item.Points
	}
	return total
}

func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(float64(total) / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
