package s0_roster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

// Repository stores rosters as one JSON file per stage per league
// ⭐ SSOT: 스테이지 파일 읽기/쓰기는 여기서만
type Repository struct {
	dir    string
	logger *logger.Logger
	now    func() time.Time
}

// NewRepository creates a repository rooted at dir
func NewRepository(dir string, log *logger.Logger) *Repository {
	return &Repository{
		dir:    dir,
		logger: log,
		now:    time.Now,
	}
}

// Dir returns the data directory
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the absolute path of a file name inside the data directory
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Exists reports whether the file of a stage is present
func (r *Repository) Exists(category contracts.Category, stage contracts.Stage) bool {
	return r.fileExists(StageFile(category, stage))
}

// CompletedStages lists the stages whose files exist for a category
func (r *Repository) CompletedStages(category contracts.Category) []contracts.Stage {
	stages := make([]contracts.Stage, 0)
	for _, s := range contracts.AllStages() {
		if r.Exists(category, s) {
			stages = append(stages, s)
		}
	}
	return stages
}

// LoadRaw reads and ingests the raw roster file of a category
func (r *Repository) LoadRaw(ctx context.Context, category contracts.Category) (*contracts.Roster, error) {
	name := StageFile(category, contracts.StageRaw)
	decoded, err := r.readRoster(name)
	if err != nil {
		return nil, err
	}

	roster, report := Ingest(decoded, category, r.logger)
	if err := validate(name, roster); err != nil {
		return nil, err
	}

	r.logger.WithFields(map[string]interface{}{
		"league":     category,
		"file":       name,
		"players":    report.Players,
		"duplicates": len(report.Duplicates),
	}).Info("Ingested raw roster")

	return roster, nil
}

// Load reads the output of a completed stage and verifies the stage it records.
// RAW goes through ingestion.
func (r *Repository) Load(ctx context.Context, category contracts.Category, stage contracts.Stage) (*contracts.Roster, error) {
	if stage == contracts.StageRaw {
		return r.LoadRaw(ctx, category)
	}

	name := StageFile(category, stage)
	if name == "" {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}

	roster, err := r.readRoster(name)
	if err != nil {
		return nil, err
	}

	if roster.Stage != stage {
		return nil, &contracts.SchemaError{
			File:    name,
			Field:   "stage",
			Message: fmt.Sprintf("expected %s, file records %q", stage, roster.Stage),
		}
	}
	if roster.Category != category {
		return nil, &contracts.SchemaError{
			File:    name,
			Field:   "category",
			Message: fmt.Sprintf("expected %s, file records %q", category, roster.Category),
		}
	}
	if err := validate(name, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// validate rejects rosters whose identity keys are empty or repeated
func validate(name string, roster *contracts.Roster) error {
	if err := roster.Validate(); err != nil {
		return &contracts.SchemaError{File: name, Field: "players", Message: err.Error()}
	}
	return nil
}

// Save writes the roster to the file of its stage
func (r *Repository) Save(ctx context.Context, roster *contracts.Roster) error {
	name := StageFile(roster.Category, roster.Stage)
	if name == "" {
		return fmt.Errorf("roster has unknown stage %q", roster.Stage)
	}
	return r.SaveAs(ctx, name, roster)
}

// SaveAs writes the roster to an explicit file name (combined / filtered outputs)
func (r *Repository) SaveAs(ctx context.Context, name string, roster *contracts.Roster) error {
	roster.UpdatedAt = r.now().UTC()

	data, err := Encode(roster)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := WriteFileAtomic(r.Path(name), data); err != nil {
		return err
	}

	r.logger.WithFields(map[string]interface{}{
		"file":    name,
		"stage":   roster.Stage,
		"players": len(roster.Players),
	}).Debug("Saved roster")
	return nil
}

// ReadFile reads a roster file by name without stage checks
func (r *Repository) ReadFile(name string) (*contracts.Roster, error) {
	return r.readRoster(name)
}

// WriteJSON atomically writes any value as indented JSON (reports)
func (r *Repository) WriteJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return WriteFileAtomic(r.Path(name), data)
}

func (r *Repository) readRoster(name string) (*contracts.Roster, error) {
	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &contracts.SchemaError{File: name, Field: "file", Message: "not found"}
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Decode(name, data)
}

// === IGL list ===

type iglFile struct {
	Players []contracts.IGLEntry `json:"players"`
}

// AppendIGLs adds entries to igls.json, creating it when absent.
// Links already listed are skipped, so rerunning a league keeps one entry per IGL.
func (r *Repository) AppendIGLs(ctx context.Context, entries []contracts.IGLEntry) error {
	existing, err := r.LoadIGLs(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(existing)+len(entries))
	for _, e := range existing {
		seen[e.Link] = true
	}
	added := 0
	for _, e := range entries {
		if seen[e.Link] {
			continue
		}
		seen[e.Link] = true
		existing = append(existing, e)
		added++
	}
	if added == 0 && r.fileExists(IGLFile) {
		return nil
	}
	return r.WriteJSON(IGLFile, iglFile{Players: existing})
}

func (r *Repository) fileExists(name string) bool {
	_, err := os.Stat(r.Path(name))
	return err == nil
}

// LoadIGLs reads igls.json; a missing file is an empty list
func (r *Repository) LoadIGLs(ctx context.Context) ([]contracts.IGLEntry, error) {
	data, err := os.ReadFile(r.Path(IGLFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []contracts.IGLEntry{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", IGLFile, err)
	}

	var file iglFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &contracts.SchemaError{File: IGLFile, Field: "players", Message: err.Error()}
	}
	if file.Players == nil {
		file.Players = []contracts.IGLEntry{}
	}
	return file.Players, nil
}

// ClearIGLs removes igls.json
func (r *Repository) ClearIGLs(ctx context.Context) error {
	if err := os.Remove(r.Path(IGLFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", IGLFile, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file in the target directory and renames it over path
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 성공 후에는 no-op

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

var (
	_ contracts.RosterRepository = (*Repository)(nil)
	_ contracts.IGLRepository    = (*Repository)(nil)
)
