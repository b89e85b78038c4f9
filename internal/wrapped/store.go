package wrapped

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the relational run store. One Store is opened per process and
// shared by sequential runs; concurrent runs against the same store are not
// supported.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed, applies the
// pragmas and schema, and returns a ready store. Safe to call against an
// existing database.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS WrappedRun (
			id TEXT PRIMARY KEY,
			timeRangeStart INTEGER NOT NULL,
			timeRangeEnd INTEGER NOT NULL,
			totalAssets INTEGER NOT NULL,
			locationAssets INTEGER NOT NULL,
			locationCoveragePct REAL NOT NULL,
			accessPrivileges TEXT NOT NULL,
			filtersHash TEXT NOT NULL,
			algorithmVersion TEXT NOT NULL,
			createdAt INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS PlaceCluster (
			id TEXT PRIMARY KEY,
			runId TEXT NOT NULL,
			centroidLat REAL,
			centroidLon REAL,
			photoCount INTEGER NOT NULL,
			distinctDaysCount INTEGER NOT NULL,
			label TEXT NOT NULL,
			labelConfidence TEXT NOT NULL,
			representativeAssetIds TEXT NOT NULL,
			isHidden INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			FOREIGN KEY (runId) REFERENCES WrappedRun(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cluster_run ON PlaceCluster(runId, isHidden, photoCount)`,
		`CREATE TABLE IF NOT EXISTS CardModel (
			id TEXT PRIMARY KEY,
			runId TEXT NOT NULL,
			type TEXT NOT NULL,
			payload TEXT NOT NULL,
			renderOrder INTEGER NOT NULL,
			FOREIGN KEY (runId) REFERENCES WrappedRun(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_card_run ON CardModel(runId, renderOrder)`,
		`CREATE TABLE IF NOT EXISTS GeocodeCache (
			key TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			updatedAt INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveRun upserts one run record keyed by id.
func (s *Store) SaveRun(run *WrappedRun) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO WrappedRun
		(id, timeRangeStart, timeRangeEnd, totalAssets, locationAssets,
		 locationCoveragePct, accessPrivileges, filtersHash, algorithmVersion, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.TimeRangeStart.UnixMilli(),
		run.TimeRangeEnd.UnixMilli(),
		run.TotalAssets,
		run.LocationAssets,
		run.LocationCoveragePct,
		run.AccessPrivileges,
		run.FiltersHash,
		run.AlgorithmVersion,
		run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// SaveCluster upserts one place cluster keyed by id.
func (s *Store) SaveCluster(place *PlaceCluster) error {
	reps, err := json.Marshal(place.RepresentativeAssetIDs)
	if err != nil {
		return fmt.Errorf("encode representatives: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO PlaceCluster
		(id, runId, centroidLat, centroidLon, photoCount, distinctDaysCount,
		 label, labelConfidence, representativeAssetIds, isHidden, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.ID,
		place.RunID,
		place.CentroidLat,
		place.CentroidLon,
		place.PhotoCount,
		place.DistinctDaysCount,
		place.Label,
		string(place.LabelConfidence),
		string(reps),
		boolToInt(place.IsHidden),
		place.Source,
	)
	if err != nil {
		return fmt.Errorf("save cluster: %w", err)
	}
	return nil
}

// SaveCard upserts one card keyed by id.
func (s *Store) SaveCard(card *CardModel) error {
	payload, err := json.Marshal(card.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO CardModel (id, runId, type, payload, renderOrder)
		VALUES (?, ?, ?, ?, ?)`,
		card.ID, card.RunID, string(card.Type), string(payload), card.RenderOrder,
	)
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// GetRun returns the run with the given id, or nil if absent.
func (s *Store) GetRun(id string) (*WrappedRun, error) {
	row := s.db.QueryRow(`
		SELECT id, timeRangeStart, timeRangeEnd, totalAssets, locationAssets,
		       locationCoveragePct, accessPrivileges, filtersHash, algorithmVersion, createdAt
		FROM WrappedRun WHERE id = ?`, id)

	var run WrappedRun
	var start, end, created int64
	err := row.Scan(
		&run.ID, &start, &end, &run.TotalAssets, &run.LocationAssets,
		&run.LocationCoveragePct, &run.AccessPrivileges, &run.FiltersHash,
		&run.AlgorithmVersion, &created,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.TimeRangeStart = time.UnixMilli(start)
	run.TimeRangeEnd = time.UnixMilli(end)
	run.CreatedAt = time.UnixMilli(created)
	return &run, nil
}

// LatestRun returns the most recently created run, or nil on an empty store.
func (s *Store) LatestRun() (*WrappedRun, error) {
	row := s.db.QueryRow(`SELECT id FROM WrappedRun ORDER BY createdAt DESC LIMIT 1`)
	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return s.GetRun(id)
}

// Clusters lists a run's clusters ordered by photoCount descending. Hidden
// clusters are excluded unless includeHidden is set.
func (s *Store) Clusters(runID string, includeHidden bool) ([]PlaceCluster, error) {
	query := `
		SELECT id, runId, centroidLat, centroidLon, photoCount, distinctDaysCount,
		       label, labelConfidence, representativeAssetIds, isHidden, source
		FROM PlaceCluster WHERE runId = ?`
	if !includeHidden {
		query += ` AND isHidden = 0`
	}
	query += ` ORDER BY photoCount DESC, id ASC`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	var out []PlaceCluster
	for rows.Next() {
		var p PlaceCluster
		var conf, reps string
		var hidden int
		if err := rows.Scan(
			&p.ID, &p.RunID, &p.CentroidLat, &p.CentroidLon, &p.PhotoCount,
			&p.DistinctDaysCount, &p.Label, &conf, &reps, &hidden, &p.Source,
		); err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		p.LabelConfidence = Confidence(conf)
		p.IsHidden = hidden == 1
		if err := json.Unmarshal([]byte(reps), &p.RepresentativeAssetIDs); err != nil {
			return nil, fmt.Errorf("decode representatives: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clusters: %w", err)
	}
	return out, nil
}

// Cards lists a run's cards ordered by renderOrder ascending.
func (s *Store) Cards(runID string) ([]CardModel, error) {
	rows, err := s.db.Query(`
		SELECT id, runId, type, payload, renderOrder
		FROM CardModel WHERE runId = ? ORDER BY renderOrder ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []CardModel
	for rows.Next() {
		var c CardModel
		var typ, payload string
		if err := rows.Scan(&c.ID, &c.RunID, &typ, &payload, &c.RenderOrder); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Type = CardType(typ)
		c.Payload, err = decodePayload(c.Type, []byte(payload))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

// HidePlace flips a single cluster's isHidden flag, leaving every other
// field untouched.
func (s *Store) HidePlace(placeID string) error {
	res, err := s.db.Exec(`UPDATE PlaceCluster SET isHidden = 1 WHERE id = ?`, placeID)
	if err != nil {
		return fmt.Errorf("hide place: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("hide place: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("place %s not found", placeID)
	}
	return nil
}

// RunCount reports how many runs the store holds.
func (s *Store) RunCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM WrappedRun`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// CacheKey is the deterministic identity of a run's inputs.
func CacheKey(start, end time.Time, filtersHash, accessPrivileges string) string {
	return fmt.Sprintf("%d-%d-%s-%s-%s",
		start.UnixMilli(), end.UnixMilli(), filtersHash, AlgorithmVersion, accessPrivileges)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
