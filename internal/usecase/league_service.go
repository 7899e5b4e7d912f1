package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
)

// LeagueInfo is the league header plus the first page of its table.
type LeagueInfo struct {
	League     json.RawMessage `json:"league"`
	Standings  standings.Page  `json:"standings"`
	NewEntries json.RawMessage `json:"new_entries"`
}

type LeagueService struct {
	source standings.Source
}

func NewLeagueService(source standings.Source) *LeagueService {
	return &LeagueService{source: source}
}

func (s *LeagueService) Get(ctx context.Context, leagueID int64) (LeagueInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	if leagueID <= 0 {
		return LeagueInfo{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	snapshot, ok := s.source.LeagueStandings(ctx, leagueID)
	if !ok || len(snapshot.League) == 0 || string(snapshot.League) == "null" {
		return LeagueInfo{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	return LeagueInfo(snapshot), nil
}
