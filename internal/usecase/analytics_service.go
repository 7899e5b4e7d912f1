package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-analytics/internal/domain/analytics"
	"github.com/riskibarqy/fpl-analytics/internal/domain/manager"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

type AnalyticsService struct {
	standings      *StandingsService
	histories      standings.Source
	managers       manager.Source
	maxConcurrency int
	logger         *logging.Logger
}

func NewAnalyticsService(
	standingsService *StandingsService,
	histories standings.Source,
	managers manager.Source,
	maxConcurrency int,
	logger *logging.Logger,
) *AnalyticsService {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultHistoryConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalyticsService{
		standings:      standingsService,
		histories:      histories,
		managers:       managers,
		maxConcurrency: maxConcurrency,
		logger:         logger.Named("analytics"),
	}
}

// LeagueSummary aggregates event points over the league table for gameweek
// (0 = the live table).
func (s *AnalyticsService) LeagueSummary(ctx context.Context, leagueID int64, gameweek int) (analytics.LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.LeagueSummary")
	defer span.End()

	snapshot, err := s.standings.ForGameweek(ctx, leagueID, gameweek)
	if err != nil {
		return analytics.LeagueSummary{}, err
	}
	rows := snapshot.Standings.Results
	if len(rows) == 0 {
		return analytics.LeagueSummary{}, fmt.Errorf("%w: no standings data for league=%d", ErrNotFound, leagueID)
	}
	return analytics.Summarize(leagueID, gameweek, rows), nil
}

// CompareManagers compares two managers over [gameweekStart, gameweekEnd]; zero bounds are open.
func (s *AnalyticsService) CompareManagers(
	ctx context.Context,
	manager1ID, manager2ID int64,
	gameweekStart, gameweekEnd int,
) (analytics.Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.CompareManagers")
	defer span.End()

	if err := validateManagerID(manager1ID); err != nil {
		return analytics.Comparison{}, err
	}
	if err := validateManagerID(manager2ID); err != nil {
		return analytics.Comparison{}, err
	}
	if gameweekStart < 0 || gameweekEnd < 0 {
		return analytics.Comparison{}, fmt.Errorf("%w: gameweek bounds must not be negative", ErrInvalidInput)
	}
	if gameweekStart > 0 && gameweekEnd > 0 && gameweekStart > gameweekEnd {
		return analytics.Comparison{}, fmt.Errorf("%w: gameweek_start must not exceed gameweek_end", ErrInvalidInput)
	}

	ids := []int64{manager1ID, manager2ID}
	type lookup struct {
		found   bool
		history standings.EntryHistory
	}
	lookups := collect(len(ids), 2, func(i int) lookup {
		if _, ok := s.managers.Entry(ctx, ids[i]); !ok {
			return lookup{}
		}
		history, ok := s.histories.EntryHistory(ctx, ids[i])
		if !ok {
			s.logger.WarnContext(ctx, "history unavailable, comparing with no gameweeks", "manager", ids[i])
		}
		return lookup{found: true, history: history}
	})

	for i, item := range lookups {
		if !item.found {
			return analytics.Comparison{}, fmt.Errorf("%w: manager=%d", ErrNotFound, ids[i])
		}
	}

	return analytics.Compare(
		manager1ID, lookups[0].history,
		manager2ID, lookups[1].history,
		gameweekStart, gameweekEnd,
	), nil
}

// TransferTrends counts transfers made by current league members, limited to gameweek
// when it is positive.
func (s *AnalyticsService) TransferTrends(ctx context.Context, leagueID int64, gameweek int) (analytics.TransferTrends, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.TransferTrends")
	defer span.End()

	if gameweek < 0 {
		return analytics.TransferTrends{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	roster, err := s.roster(ctx, leagueID)
	if err != nil {
		return analytics.TransferTrends{}, err
	}

	type transferLog struct {
		items []manager.Transfer
		ok    bool
	}
	logs := collect(len(roster), s.maxConcurrency, func(i int) transferLog {
		items, ok := s.managers.EntryTransfers(ctx, roster[i].EntryID)
		return transferLog{items: items, ok: ok}
	})

	read := 0
	all := make([]manager.Transfer, 0)
	for i, log := range logs {
		if !log.ok {
			s.logger.WarnContext(ctx, "failed to fetch transfers for entry", "entry", roster[i].EntryID)
			continue
		}
		read++
		all = append(all, manager.InEvent(log.items, gameweek)...)
	}
	return analytics.Trends(leagueID, gameweek, read, all), nil
}

// Captaincy tallies captain picks of current league members for gameweek
// (0 = the current event).
func (s *AnalyticsService) Captaincy(ctx context.Context, leagueID int64, gameweek int) (analytics.CaptaincySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.Captaincy")
	defer span.End()

	if gameweek < 0 {
		return analytics.CaptaincySummary{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	roster, err := s.roster(ctx, leagueID)
	if err != nil {
		return analytics.CaptaincySummary{}, err
	}
	if gameweek == 0 {
		current, ok := s.managers.CurrentEvent(ctx)
		if !ok {
			return analytics.CaptaincySummary{}, fmt.Errorf("%w: current gameweek is unknown", ErrDependencyUnavailable)
		}
		gameweek = current
	}

	type captainPick struct {
		element int
		ok      bool
	}
	picks := collect(len(roster), s.maxConcurrency, func(i int) captainPick {
		element, ok := s.managers.EntryCaptain(ctx, roster[i].EntryID, gameweek)
		return captainPick{element: element, ok: ok}
	})

	captains := make([]int, 0, len(picks))
	for i, pick := range picks {
		if !pick.ok {
			s.logger.WarnContext(ctx, "failed to fetch captain for entry", "entry", roster[i].EntryID, "gameweek", gameweek)
			continue
		}
		captains = append(captains, pick.element)
	}
	return analytics.Captaincy(leagueID, gameweek, captains), nil
}

func (s *AnalyticsService) roster(ctx context.Context, leagueID int64) ([]standings.Entry, error) {
	snapshot, err := s.standings.Current(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Standings.Results) == 0 {
		return nil, fmt.Errorf("%w: no standings data for league=%d", ErrNotFound, leagueID)
	}
	return snapshot.Standings.Results, nil
}
