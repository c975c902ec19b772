package contracts

import "context"

// RoleTagger tags league and IGL flags (S1)
// ⭐ SSOT: S1 역할 태깅 인터페이스
type RoleTagger interface {
	Tag(ctx context.Context, roster *Roster) (*StageResult, error)
}

// StatEnricher attaches per-agent statistics (S2)
// ⭐ SSOT: S2 스탯 수집 인터페이스
type StatEnricher interface {
	Enrich(ctx context.Context, roster *Roster) (*StageResult, error)
}

// RosterScorer computes component and total scores (S3).
// year selects which placements count; it is never read from the clock here.
// ⭐ SSOT: S3 스코어링 인터페이스
type RosterScorer interface {
	Score(ctx context.Context, roster *Roster, year int) (*StageResult, error)
}

// RosterRanker orders a scored roster (S4)
// ⭐ SSOT: S4 랭킹 인터페이스
type RosterRanker interface {
	Rank(ctx context.Context, roster *Roster) (*StageResult, error)
}

// RosterRepository persists rosters between stages
// ⭐ SSOT: Repository 인터페이스 정의는 여기서만
type RosterRepository interface {
	// LoadRaw reads the ingestion file of a category
	LoadRaw(ctx context.Context, category Category) (*Roster, error)
	// Load reads the output of a completed stage and verifies its recorded stage
	Load(ctx context.Context, category Category, stage Stage) (*Roster, error)
	// Save atomically writes the roster to the file of roster.Stage
	Save(ctx context.Context, roster *Roster) error
	// Exists reports whether the file of a stage is present
	Exists(category Category, stage Stage) bool
}

// IGLRepository accumulates detected IGLs across league runs
type IGLRepository interface {
	AppendIGLs(ctx context.Context, entries []IGLEntry) error
	LoadIGLs(ctx context.Context) ([]IGLEntry, error)
	ClearIGLs(ctx context.Context) error
}
