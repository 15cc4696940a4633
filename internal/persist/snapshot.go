package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/daydesk/daydesk/internal/state"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errMissingDatabase = errors.New("persist: database handle is required")
	noOpLogger         = zap.NewNop()
)

// snapshotPayload is the partialized subset of state written to the slot.
// The user object and transient UI flags are deliberately excluded.
type snapshotPayload struct {
	SchemaVersion int                  `json:"schemaVersion"`
	Todos         []state.Todo         `json:"todos"`
	Notes         []state.Note         `json:"notes"`
	Habits        []state.Habit        `json:"habits"`
	DrawingPads   []state.DrawingPad   `json:"drawingPads"`
	Files         []state.FileItem     `json:"files"`
	Notifications []state.Notification `json:"notifications"`
	CurrentView   string               `json:"currentView"`
}

// payloadMigration rewrites a decoded payload from one schema version to the
// next. Migrations run in order when Load encounters an older snapshot.
type payloadMigration func(*snapshotPayload)

// migrations maps a payload's schemaVersion to the rewrite that lifts it to
// the following version.
var migrations = map[int]payloadMigration{}

// SnapshotStoreConfig describes the dependencies for the snapshot store.
type SnapshotStoreConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// SnapshotStore persists the application snapshot to a single named slot.
// It holds no state of its own; it is a read/write conduit for the state
// container.
type SnapshotStore struct {
	db     *gorm.DB
	clock  func() time.Time
	logger *zap.Logger
}

// NewSnapshotStore constructs the snapshot store.
func NewSnapshotStore(cfg SnapshotStoreConfig) (*SnapshotStore, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &SnapshotStore{db: cfg.Database, clock: clock, logger: logger}, nil
}

// Save serializes the partialized snapshot into the slot. Synchronous and
// best-effort: the caller treats a returned error as "state not saved", not
// as a fault.
func (p *SnapshotStore) Save(snapshot state.State) error {
	payload := snapshotPayload{
		SchemaVersion: SchemaVersion,
		Todos:         snapshot.Todos,
		Notes:         snapshot.Notes,
		Habits:        snapshot.Habits,
		DrawingPads:   snapshot.DrawingPads,
		Files:         snapshot.Files,
		Notifications: snapshot.Notifications,
		CurrentView:   snapshot.CurrentView,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	record := SlotRecord{
		Name:           SlotName,
		PayloadJSON:    string(encoded),
		SchemaVersion:  SchemaVersion,
		SavedAtSeconds: p.clock().UTC().Unix(),
	}
	if err := p.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		return fmt.Errorf("persist: write slot: %w", err)
	}
	return nil
}

// Load returns the last saved snapshot, or the default empty state when no
// slot exists or the stored payload cannot be read. Only a hard database
// error is surfaced; a corrupt or version-incompatible payload degrades to
// defaults.
func (p *SnapshotStore) Load() (state.State, error) {
	var record SlotRecord
	err := p.db.Where("name = ?", SlotName).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return state.DefaultState(), nil
	}
	if err != nil {
		return state.DefaultState(), fmt.Errorf("persist: read slot: %w", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal([]byte(record.PayloadJSON), &payload); err != nil {
		p.logger.Warn("stored snapshot is corrupt, using defaults", zap.Error(err))
		return state.DefaultState(), nil
	}
	if payload.SchemaVersion == 0 {
		payload.SchemaVersion = record.SchemaVersion
	}
	if payload.SchemaVersion > SchemaVersion {
		p.logger.Warn("stored snapshot is from a newer schema, using defaults",
			zap.Int("stored_version", payload.SchemaVersion),
			zap.Int("supported_version", SchemaVersion))
		return state.DefaultState(), nil
	}
	for version := payload.SchemaVersion; version < SchemaVersion; version++ {
		migrate, ok := migrations[version]
		if !ok {
			p.logger.Warn("no migration path for stored snapshot, using defaults",
				zap.Int("stored_version", version))
			return state.DefaultState(), nil
		}
		migrate(&payload)
		payload.SchemaVersion = version + 1
	}

	loaded := state.State{
		Todos:         payload.Todos,
		Notes:         payload.Notes,
		Habits:        payload.Habits,
		DrawingPads:   payload.DrawingPads,
		Files:         payload.Files,
		Notifications: payload.Notifications,
		CurrentView:   payload.CurrentView,
	}
	if loaded.CurrentView == "" {
		loaded.CurrentView = state.DefaultView
	}
	return loaded, nil
}
