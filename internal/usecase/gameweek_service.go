package usecase

import (
	"context"
	"encoding/json"
	"fmt"
)

type GameweekSource interface {
	EventLive(ctx context.Context, gameweek int) (json.RawMessage, bool)
	Fixtures(ctx context.Context, gameweek int) (json.RawMessage, bool)
}

type GameweekService struct {
	source GameweekSource
}

func NewGameweekService(source GameweekSource) *GameweekService {
	return &GameweekService{source: source}
}

func (s *GameweekService) Live(ctx context.Context, gameweek int) (json.RawMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Live")
	defer span.End()

	if gameweek < 1 {
		return nil, fmt.Errorf("%w: gameweek must be at least 1", ErrInvalidInput)
	}
	data, ok := s.source.EventLive(ctx, gameweek)
	if !ok {
		return nil, fmt.Errorf("%w: live data for gameweek=%d", ErrNotFound, gameweek)
	}
	return data, nil
}

// Fixtures lists fixtures for gameweek, or the whole season for gameweek 0.
func (s *GameweekService) Fixtures(ctx context.Context, gameweek int) (json.RawMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Fixtures")
	defer span.End()

	if gameweek < 0 {
		return nil, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	data, ok := s.source.Fixtures(ctx, gameweek)
	if !ok {
		return nil, fmt.Errorf("%w: fixtures for gameweek=%d", ErrNotFound, gameweek)
	}
	return data, nil
}
