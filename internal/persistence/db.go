// Package persistence provides SQLite-based world storage. A saved world
// round-trips its terrain, political layers, registry, vassal order, and
// entity decks; derived collections are rebuilt on load.
package persistence

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/legion-shores/internal/social"
	"github.com/talgya/legion-shores/internal/world"
)

// DB wraps a SQLite connection for world storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		size INTEGER NOT NULL,
		ethnics INTEGER NOT NULL,
		regions INTEGER NOT NULL,
		realms INTEGER NOT NULL,
		entities INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		terrain BLOB NOT NULL,
		ethnic_layer BLOB NOT NULL,
		realm_layer BLOB NOT NULL,
		region_layer BLOB NOT NULL,
		entity_layer BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ethnics (
		world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		wild INTEGER NOT NULL,
		PRIMARY KEY (world_id, id)
	);

	CREATE TABLE IF NOT EXISTS regions (
		world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (world_id, id)
	);

	CREATE TABLE IF NOT EXISTS realms (
		world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type INTEGER NOT NULL,
		overlord INTEGER NOT NULL,
		vassals_json TEXT NOT NULL,
		PRIMARY KEY (world_id, id)
	);

	CREATE TABLE IF NOT EXISTS entities (
		world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		decks_json TEXT NOT NULL,
		PRIMARY KEY (world_id, id)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_worlds_created ON worlds(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// WorldSummary is one row of ListWorlds.
type WorldSummary struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	Size      int    `db:"size"`
	Ethnics   int    `db:"ethnics"`
	Regions   int    `db:"regions"`
	Realms    int    `db:"realms"`
	Entities  int    `db:"entities"`
	CreatedAt int64  `db:"created_at"` // unix seconds
}

// Created returns the save time.
func (s WorldSummary) Created() time.Time { return time.Unix(s.CreatedAt, 0) }

func (s WorldSummary) String() string {
	return fmt.Sprintf("%s  seed %s  %d×%d  %s ethnics  %s regions  %s realms  saved %s",
		s.ID, humanize.Comma(s.Seed), s.Size, s.Size,
		humanize.Comma(int64(s.Ethnics)), humanize.Comma(int64(s.Regions)),
		humanize.Comma(int64(s.Realms)), humanize.Time(s.Created()))
}

// SaveWorld stores a world under a fresh id and records it as the most
// recent save.
func (db *DB) SaveWorld(w *social.World) (uuid.UUID, error) {
	id := uuid.New()
	layers, reg := w.Layers(), w.Registry()
	slog.Info("saving world", "id", id, "size", w.Size(), "regions", w.RegionsCount(), "realms", w.RealmsCount())

	tx, err := db.conn.Beginx()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO worlds
		(id, seed, size, ethnics, regions, realms, entities, created_at,
		 terrain, ethnic_layer, realm_layer, region_layer, entity_layer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), w.Seed(), w.Size(), w.EthnicsCount(), w.RegionsCount(),
		w.RealmsCount(), w.EntitiesCount(), time.Now().Unix(),
		w.Grid().Bytes(), packIDs(layers.Ethnics), packIDs(layers.Realms),
		packIDs(layers.Regions), packIDs(layers.Entities),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert world: %w", err)
	}

	for _, e := range reg.Ethnics {
		_, err := tx.Exec("INSERT INTO ethnics (world_id, id, name, wild) VALUES (?, ?, ?, ?)",
			id.String(), e.ID, e.Name, e.Wild)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert ethnic %s: %w", e.ID, err)
		}
	}

	stmt, err := tx.Preparex("INSERT INTO regions (world_id, id, name) VALUES (?, ?, ?)")
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()
	for _, r := range reg.Regions {
		if _, err := stmt.Exec(id.String(), r.ID, r.Name); err != nil {
			return uuid.Nil, fmt.Errorf("insert region %s: %w", r.ID, err)
		}
	}

	for _, r := range reg.Realms {
		vassalsJSON, _ := json.Marshal(r.Vassals)
		_, err := tx.Exec(`INSERT INTO realms (world_id, id, name, type, overlord, vassals_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id.String(), r.ID, r.Name, r.Type, r.Overlord, string(vassalsJSON))
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert realm %s: %w", r.ID, err)
		}
	}

	for _, e := range reg.Entities {
		decksJSON, err := json.Marshal(e.Decks)
		if err != nil {
			return uuid.Nil, fmt.Errorf("encode decks of %s: %w", e.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO entities (world_id, id, name, kind, x, y, decks_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id.String(), e.ID, e.Name, e.Type, e.X, e.Y, string(decksJSON))
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert entity %s: %w", e.ID, err)
		}
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		metaLastWorld, id.String()); err != nil {
		return uuid.Nil, fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	slog.Info("world saved", "id", id)
	return id, nil
}

type worldRow struct {
	Seed        int64  `db:"seed"`
	Size        int    `db:"size"`
	Terrain     []byte `db:"terrain"`
	EthnicLayer []byte `db:"ethnic_layer"`
	RealmLayer  []byte `db:"realm_layer"`
	RegionLayer []byte `db:"region_layer"`
	EntityLayer []byte `db:"entity_layer"`
}

type ethnicRow struct {
	ID   uint32 `db:"id"`
	Name string `db:"name"`
	Wild bool   `db:"wild"`
}

type regionRow struct {
	ID   uint32 `db:"id"`
	Name string `db:"name"`
}

type realmRow struct {
	ID       uint32 `db:"id"`
	Name     string `db:"name"`
	Type     uint8  `db:"type"`
	Overlord uint32 `db:"overlord"`
	Vassals  string `db:"vassals_json"`
}

type entityRow struct {
	ID    uint32 `db:"id"`
	Name  string `db:"name"`
	Kind  uint8  `db:"kind"`
	X     int    `db:"x"`
	Y     int    `db:"y"`
	Decks string `db:"decks_json"`
}

// LoadWorld reads a saved world and reassembles it.
func (db *DB) LoadWorld(id uuid.UUID) (*social.World, error) {
	var row worldRow
	err := db.conn.Get(&row, `SELECT seed, size, terrain, ethnic_layer, realm_layer,
		region_layer, entity_layer FROM worlds WHERE id = ?`, id.String())
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", id, err)
	}

	cells := make([]world.Terrain, len(row.Terrain))
	for i, b := range row.Terrain {
		cells[i] = world.Terrain(b)
	}
	grid, err := world.GridFromCells(row.Size, cells)
	if err != nil {
		return nil, fmt.Errorf("load terrain: %w", err)
	}

	layers := &social.Layers{Size: row.Size}
	if layers.Ethnics, err = unpackIDs[social.EthnicID](row.EthnicLayer); err != nil {
		return nil, err
	}
	if layers.Realms, err = unpackIDs[social.RealmID](row.RealmLayer); err != nil {
		return nil, err
	}
	if layers.Regions, err = unpackIDs[social.RegionID](row.RegionLayer); err != nil {
		return nil, err
	}
	if layers.Entities, err = unpackIDs[social.EntityID](row.EntityLayer); err != nil {
		return nil, err
	}

	reg, err := db.loadRegistry(id)
	if err != nil {
		return nil, err
	}
	w, err := social.NewWorld(grid, layers, reg, row.Seed)
	if err != nil {
		return nil, fmt.Errorf("assemble world %s: %w", id, err)
	}
	slog.Info("world loaded", "id", id, "regions", w.RegionsCount(), "realms", w.RealmsCount())
	return w, nil
}

func (db *DB) loadRegistry(id uuid.UUID) (*social.Registry, error) {
	reg := social.NewRegistry()

	var ethnics []ethnicRow
	if err := db.conn.Select(&ethnics, "SELECT id, name, wild FROM ethnics WHERE world_id = ?", id.String()); err != nil {
		return nil, fmt.Errorf("load ethnics: %w", err)
	}
	for _, r := range ethnics {
		eid := social.EthnicID(r.ID)
		reg.Ethnics[eid] = &social.Ethnic{ID: eid, Name: r.Name, Wild: r.Wild}
	}

	var regions []regionRow
	if err := db.conn.Select(&regions, "SELECT id, name FROM regions WHERE world_id = ?", id.String()); err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	for _, r := range regions {
		rid := social.RegionID(r.ID)
		reg.Regions[rid] = &social.Region{ID: rid, Name: r.Name}
	}

	var realms []realmRow
	if err := db.conn.Select(&realms, "SELECT id, name, type, overlord, vassals_json FROM realms WHERE world_id = ?", id.String()); err != nil {
		return nil, fmt.Errorf("load realms: %w", err)
	}
	for _, r := range realms {
		realm := &social.Realm{
			ID:       social.RealmID(r.ID),
			Name:     r.Name,
			Type:     social.RealmType(r.Type),
			Overlord: social.RealmID(r.Overlord),
		}
		if err := json.Unmarshal([]byte(r.Vassals), &realm.Vassals); err != nil {
			return nil, fmt.Errorf("decode vassals of %s: %w", realm.ID, err)
		}
		reg.Realms[realm.ID] = realm
	}

	var entities []entityRow
	if err := db.conn.Select(&entities, "SELECT id, name, kind, x, y, decks_json FROM entities WHERE world_id = ?", id.String()); err != nil {
		return nil, fmt.Errorf("load entities: %w", err)
	}
	for _, r := range entities {
		e := &social.Entity{
			ID:   social.EntityID(r.ID),
			Name: r.Name,
			Type: social.EntityKind(r.Kind),
			X:    r.X,
			Y:    r.Y,
		}
		if err := json.Unmarshal([]byte(r.Decks), &e.Decks); err != nil {
			return nil, fmt.Errorf("decode decks of %s: %w", e.ID, err)
		}
		reg.Entities[e.ID] = e
	}
	return reg, nil
}

// ListWorlds returns every saved world, newest first.
func (db *DB) ListWorlds() ([]WorldSummary, error) {
	var out []WorldSummary
	err := db.conn.Select(&out, `SELECT id, seed, size, ethnics, regions, realms, entities, created_at
		FROM worlds ORDER BY created_at DESC, rowid DESC`)
	return out, err
}

// DeleteWorld removes a saved world and everything attached to it.
func (db *DB) DeleteWorld(id uuid.UUID) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, table := range []string{"ethnics", "regions", "realms", "entities", "worlds"} {
		col := "world_id"
		if table == "worlds" {
			col = "id"
		}
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE "+col+" = ?", id.String()); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

const metaLastWorld = "last_world"

// LastWorld returns the id of the most recent save.
func (db *DB) LastWorld() (uuid.UUID, error) {
	value, err := db.GetMeta(metaLastWorld)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(value)
}

// SaveMeta stores a key-value pair in store metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// packIDs stores a layer as little-endian uint32s.
func packIDs[T ~uint16 | ~uint32](ids []T) []byte {
	buf := make([]byte, 0, 4*len(ids))
	for _, id := range ids {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
	}
	return buf
}

func unpackIDs[T ~uint16 | ~uint32](b []byte) ([]T, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("layer blob of %d bytes is not a whole number of ids", len(b))
	}
	out := make([]T, len(b)/4)
	for i := range out {
		out[i] = T(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out, nil
}
