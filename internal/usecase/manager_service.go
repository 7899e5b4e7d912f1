package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/riskibarqy/fpl-analytics/internal/domain/manager"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
)

type ManagerService struct {
	managers  manager.Source
	histories standings.Source
}

func NewManagerService(managers manager.Source, histories standings.Source) *ManagerService {
	return &ManagerService{
		managers:  managers,
		histories: histories,
	}
}

func (s *ManagerService) Get(ctx context.Context, managerID int64) (json.RawMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Get")
	defer span.End()

	if err := validateManagerID(managerID); err != nil {
		return nil, err
	}
	data, ok := s.managers.Entry(ctx, managerID)
	if !ok {
		return nil, fmt.Errorf("%w: manager=%d", ErrNotFound, managerID)
	}
	return data, nil
}

func (s *ManagerService) History(ctx context.Context, managerID int64) (standings.EntryHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.History")
	defer span.End()

	if err := validateManagerID(managerID); err != nil {
		return standings.EntryHistory{}, err
	}
	history, ok := s.histories.EntryHistory(ctx, managerID)
	if !ok {
		return standings.EntryHistory{}, fmt.Errorf("%w: history for manager=%d", ErrNotFound, managerID)
	}
	return history, nil
}

// Team returns the manager's picks for gameweek; gameweek 0 means the current event.
func (s *ManagerService) Team(ctx context.Context, managerID int64, gameweek int) (json.RawMessage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Team")
	defer span.End()

	if err := validateManagerID(managerID); err != nil {
		return nil, err
	}
	gameweek, err := s.resolveGameweek(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	data, ok := s.managers.EntryPicks(ctx, managerID, gameweek)
	if !ok {
		return nil, fmt.Errorf("%w: team for manager=%d gameweek=%d", ErrNotFound, managerID, gameweek)
	}
	return data, nil
}

// Transfers lists the manager's transfers, limited to gameweek when it is positive.
// An unreadable transfer log yields an empty list.
func (s *ManagerService) Transfers(ctx context.Context, managerID int64, gameweek int) ([]manager.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Transfers")
	defer span.End()

	if err := validateManagerID(managerID); err != nil {
		return nil, err
	}
	if gameweek < 0 {
		return nil, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}

	items, ok := s.managers.EntryTransfers(ctx, managerID)
	if !ok {
		return []manager.Transfer{}, nil
	}
	return manager.InEvent(items, gameweek), nil
}

func (s *ManagerService) resolveGameweek(ctx context.Context, gameweek int) (int, error) {
	if gameweek < 0 {
		return 0, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	if gameweek > 0 {
		return gameweek, nil
	}
	current, ok := s.managers.CurrentEvent(ctx)
	if !ok {
		return 0, fmt.Errorf("%w: current gameweek is unknown", ErrDependencyUnavailable)
	}
	return current, nil
}

func validateManagerID(managerID int64) error {
	if managerID <= 0 {
		return fmt.Errorf("%w: manager id must be positive", ErrInvalidInput)
	}
	return nil
}
