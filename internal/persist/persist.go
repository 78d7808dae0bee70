// Package persist gives the world-simulation core somewhere to put the
// compressed Serialize() records spec.md's serialization layer produces
// (SPEC_FULL.md §C.3): a Postgres-backed SnapshotStore for whole-dungeon
// saves and individual mob saves (character save-on-logout), grounded on
// the teacher's internal/db repository pattern
// (internal/db/db.go, internal/db/spawn_repository.go).
//
// persist depends downward on the core packages only; nothing in the core
// imports persist back.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brackenmoor/mudcore/internal/effects"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/world"
)

// SnapshotStore wraps a pgx connection pool for dungeon/mob snapshot
// persistence.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a SnapshotStore handle, mirroring
// the teacher's db.New (dial, ping, wrap).
func New(ctx context.Context, dsn string) (*SnapshotStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &SnapshotStore{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (s *SnapshotStore) Close() {
	s.pool.Close()
}

// Pool returns the underlying pgx pool, for goose migrations.
func (s *SnapshotStore) Pool() *pgxpool.Pool {
	return s.pool
}

// TemplateResolver is the minimal surface SnapshotStore needs to rebuild
// the compression baseline for a saved tree's nodes. internal/world's
// Dungeon and internal/worlddata's Catalog both satisfy it;
// defined here rather than imported so persist never needs to know which
// one the caller passed.
type TemplateResolver interface {
	ResolveTemplate(id string) (*object.Template, error)
}

// SaveDungeon compresses and writes the full state of d (every room and
// its recursive contents) as a single jsonb row, upserted by dungeon id
// (spec.md §1: "lets it be reconstituted on restart").
func (s *SnapshotStore) SaveDungeon(ctx context.Context, d *world.Dungeon, resolver TemplateResolver) error {
	rooms := make([]map[string]any, 0)
	for _, n := range d.ContentsSnapshot() {
		if _, ok := n.(*world.Room); !ok {
			continue
		}
		rooms = append(rooms, CompressTree(object.Serialize(n), resolver))
	}

	payload, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("marshaling dungeon snapshot %q: %w", d.ID(), err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO world_snapshots (dungeon_id, rooms, saved_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (dungeon_id) DO UPDATE SET rooms = $2, saved_at = $3`,
		d.ID(), payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving dungeon snapshot %q: %w", d.ID(), err)
	}
	return nil
}

// LoadDungeonRecord loads the raw compressed room records last saved for
// dungeonID. Returns nil, nil if no snapshot exists. The records come back
// compressed; NormalizeTree followed by RestoreDungeonRooms (decode.go)
// rebuilds live rooms from them.
func (s *SnapshotStore) LoadDungeonRecord(ctx context.Context, dungeonID string) ([]map[string]any, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT rooms FROM world_snapshots WHERE dungeon_id = $1`, dungeonID,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading dungeon snapshot %q: %w", dungeonID, err)
	}

	var rooms []map[string]any
	if err := json.Unmarshal(payload, &rooms); err != nil {
		return nil, fmt.Errorf("decoding dungeon snapshot %q: %w", dungeonID, err)
	}
	return rooms, nil
}

// SaveMob persists a single mob's compressed record for character
// save-on-logout, keyed by object id. nowMs anchors the remaining-duration
// fields of the mob's live effect timers; the mob's own Serialize output
// never carries them (it has no clock), so they are merged in here.
func (s *SnapshotStore) SaveMob(ctx context.Context, m *mob.Mob, resolver TemplateResolver, nowMs int64) error {
	full := object.Serialize(m)
	if active := effects.SerializeActive(m, nowMs); len(active) > 0 {
		full["effects"] = active
	}
	rec := CompressTree(full, resolver)
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling mob snapshot %d: %w", m.Base().ObjectID(), err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO object_snapshots (oid, record, saved_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (oid) DO UPDATE SET record = $2, saved_at = $3`,
		m.Base().ObjectID(), payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving mob snapshot %d: %w", m.Base().ObjectID(), err)
	}
	return nil
}

// LoadMobRecord loads the raw compressed record last saved for oid.
// Returns nil, nil if no snapshot exists.
func (s *SnapshotStore) LoadMobRecord(ctx context.Context, oid int64) (map[string]any, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM object_snapshots WHERE oid = $1`, oid,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading mob snapshot %d: %w", oid, err)
	}

	var rec map[string]any
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decoding mob snapshot %d: %w", oid, err)
	}
	return rec, nil
}
