package standings

import "context"

// Source reads league tables and entry histories. ok=false covers both "absent upstream"
// and "upstream failed"; callers cannot tell them apart.
type Source interface {
	LeagueStandings(ctx context.Context, leagueID int64) (Snapshot, bool)
	EntryHistory(ctx context.Context, entryID int64) (EntryHistory, bool)
}
