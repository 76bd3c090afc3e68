// Package store persists analysis snapshots in a SQLite database under
// .rasr/snapshots.db, so runs can be listed and compared later without
// re-scanning the project.
package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite"

	"rasr/internal/engine"
	rasrerrors "rasr/internal/errors"
	"rasr/internal/logging"
)

// SnapshotMeta is the listing row for one stored snapshot
type SnapshotMeta struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
}

// Store provides snapshot persistence
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the snapshot database under rasrDir
func OpenStore(rasrDir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(rasrDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .rasr directory: %w", err)
	}

	dbPath := filepath.Join(rasrDir, "snapshots.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}

	if !dbExists {
		logger.Info("Creating snapshot database", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			project TEXT NOT NULL,
			created_at TEXT NOT NULL,
			nodes INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			result BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project);
		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveSnapshot stores a result as a gzip-compressed JSON blob and returns
// the new snapshot ID.
func (s *Store) SaveSnapshot(result *engine.Result) (string, error) {
	blob, err := compressResult(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id := uuid.New().String()
	_, err = s.conn.Exec(`
		INSERT INTO snapshots (id, project, created_at, nodes, edges, result)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		id,
		result.Project,
		result.AnalyzedAt.UTC().Format(time.RFC3339),
		result.Graph.Stats.TotalNodes,
		result.Graph.Stats.TotalEdges,
		blob,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug("Saved snapshot", map[string]interface{}{
		"snapshotId": id,
		"project":    result.Project,
		"bytes":      len(blob),
	})

	return id, nil
}

// GetSnapshot loads one snapshot by ID
func (s *Store) GetSnapshot(id string) (*engine.Result, error) {
	var blob []byte
	err := s.conn.QueryRow(`SELECT result FROM snapshots WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, rasrerrors.New(rasrerrors.SnapshotNotFound, "snapshot not found: "+id, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return decompressResult(blob)
}

// ListSnapshots returns snapshot metadata, newest first. An empty project
// filter lists everything.
func (s *Store) ListSnapshots(project string, limit int) ([]SnapshotMeta, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, project, created_at, nodes, edges FROM snapshots
		ORDER BY created_at DESC LIMIT ?
	`
	args := []interface{}{limit}
	if project != "" {
		query = `
			SELECT id, project, created_at, nodes, edges FROM snapshots
			WHERE project = ? ORDER BY created_at DESC LIMIT ?
		`
		args = []interface{}{project, limit}
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var metas []SnapshotMeta
	for rows.Next() {
		var meta SnapshotMeta
		var createdAt string
		if err := rows.Scan(&meta.ID, &meta.Project, &createdAt, &meta.Nodes, &meta.Edges); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			meta.CreatedAt = t
		}
		metas = append(metas, meta)
	}

	return metas, rows.Err()
}

// DeleteSnapshot removes one snapshot by ID
func (s *Store) DeleteSnapshot(id string) error {
	result, err := s.conn.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return rasrerrors.New(rasrerrors.SnapshotNotFound, "snapshot not found: "+id, nil)
	}
	return nil
}

func compressResult(result *engine.Result) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressResult(blob []byte) (*engine.Result, error) {
	r, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var result engine.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &result, nil
}
