package manager

import (
	"context"
	"encoding/json"
)

type Source interface {
	Entry(ctx context.Context, entryID int64) (json.RawMessage, bool)
	EntryPicks(ctx context.Context, entryID int64, gameweek int) (json.RawMessage, bool)
	EntryCaptain(ctx context.Context, entryID int64, gameweek int) (int, bool)
	EntryTransfers(ctx context.Context, entryID int64) ([]Transfer, bool)
	CurrentEvent(ctx context.Context) (int, bool)
}
