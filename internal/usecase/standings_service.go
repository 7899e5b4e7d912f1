package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultHistoryConcurrency = 16

type StandingsService struct {
	source         standings.Source
	maxConcurrency int
	logger         *logging.Logger
}

func NewStandingsService(source standings.Source, maxConcurrency int, logger *logging.Logger) *StandingsService {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultHistoryConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		source:         source,
		maxConcurrency: maxConcurrency,
		logger:         logger.Named("standings"),
	}
}

func (s *StandingsService) Current(ctx context.Context, leagueID int64) (standings.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Current")
	defer span.End()

	if leagueID <= 0 {
		return standings.Snapshot{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	snapshot, ok := s.source.LeagueStandings(ctx, leagueID)
	if !ok {
		return standings.Snapshot{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	return snapshot, nil
}

// ForGameweek returns the live table for gameweek 0 and a reconstruction otherwise.
func (s *StandingsService) ForGameweek(ctx context.Context, leagueID int64, gameweek int) (standings.Snapshot, error) {
	if gameweek < 0 {
		return standings.Snapshot{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	if gameweek == 0 {
		return s.Current(ctx, leagueID)
	}
	return s.Historical(ctx, leagueID, gameweek)
}

// Historical rebuilds the league table as it stood after gameweek from each member's
// history. Members whose history cannot be read, or does not reach gameweek, are left out.
// Membership is taken from the current table, so managers who left the league are not
// included and late joiners without records for gameweek are skipped.
func (s *StandingsService) Historical(ctx context.Context, leagueID int64, gameweek int) (standings.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Historical")
	defer span.End()

	if leagueID <= 0 {
		return standings.Snapshot{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	if gameweek < 1 {
		return standings.Snapshot{}, fmt.Errorf("%w: gameweek must be at least 1", ErrInvalidInput)
	}

	current, ok := s.source.LeagueStandings(ctx, leagueID)
	if !ok {
		s.logger.ErrorContext(ctx, "failed to fetch league", "league_id", leagueID)
		return standings.Snapshot{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	roster := current.Standings.Results
	if len(roster) == 0 {
		s.logger.ErrorContext(ctx, "no standings found for league", "league_id", leagueID)
		return standings.Snapshot{}, fmt.Errorf("%w: standings for league=%d", ErrNotFound, leagueID)
	}

	span.SetAttributes(
		attribute.Int64("league.id", leagueID),
		attribute.Int("league.gameweek", gameweek),
		attribute.Int("league.entries", len(roster)),
	)
	s.logger.InfoContext(ctx, "reconstructing historical standings",
		"league_id", leagueID,
		"gameweek", gameweek,
		"entries", len(roster),
	)

	histories := s.fetchHistories(ctx, roster)

	results := make([]standings.Entry, 0, len(roster))
	for i, row := range roster {
		history := histories[i]
		if !history.ok {
			s.logger.WarnContext(ctx, "failed to fetch history for entry", "entry", row.EntryID)
			continue
		}
		record, ok := history.value.Gameweek(gameweek)
		if !ok {
			s.logger.WarnContext(ctx, "no data for entry at gameweek", "entry", row.EntryID, "gameweek", gameweek)
			continue
		}

		results = append(results, standings.Entry{
			ID:         int64(i + 1),
			EntryID:    row.EntryID,
			EntryName:  row.EntryName,
			PlayerName: row.PlayerName,
			Rank:       record.Rank,
			LastRank:   record.Rank,
			RankSort:   record.Rank,
			Total:      record.TotalPoints,
			EventTotal: record.Points,
			HasPlayed:  true,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})

	return standings.Snapshot{
		League: current.League,
		Standings: standings.Page{
			HasNext: current.Standings.HasNext,
			Page:    current.Standings.Page,
			Results: results,
		},
		NewEntries: current.NewEntries,
	}, nil
}

// History returns every current member's per-gameweek records, in table order.
// Members whose history cannot be read are returned with no gameweeks.
func (s *StandingsService) History(ctx context.Context, leagueID int64) ([]standings.MemberHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.History")
	defer span.End()

	current, err := s.Current(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	roster := current.Standings.Results
	if len(roster) == 0 {
		return []standings.MemberHistory{}, nil
	}
	histories := s.fetchHistories(ctx, roster)

	out := make([]standings.MemberHistory, 0, len(roster))
	for i, row := range roster {
		item := standings.MemberHistory{
			EntryID:    row.EntryID,
			EntryName:  row.EntryName,
			PlayerName: row.PlayerName,
			Gameweeks:  []standings.GameweekRecord{},
		}
		if histories[i].ok {
			item.Gameweeks = append(item.Gameweeks, histories[i].value.Current...)
		} else {
			s.logger.WarnContext(ctx, "failed to fetch history for entry", "entry", row.EntryID)
		}
		out = append(out, item)
	}
	return out, nil
}

type historyResult struct {
	value standings.EntryHistory
	ok    bool
}

// fetchHistories reads every roster member's history with at most maxConcurrency calls in
// flight. The result slice is indexed by roster position.
func (s *StandingsService) fetchHistories(ctx context.Context, roster []standings.Entry) []historyResult {
	return collect(len(roster), s.maxConcurrency, func(i int) historyResult {
		value, ok := s.source.EntryHistory(ctx, roster[i].EntryID)
		return historyResult{value: value, ok: ok}
	})
}
