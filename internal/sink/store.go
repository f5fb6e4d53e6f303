package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// ErrRunNotFound is returned when a run id is not in the store
var ErrRunNotFound = errors.New("run not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		area_mode TEXT NOT NULL,
		fasteners INTEGER NOT NULL,
		centroid_x REAL NOT NULL,
		centroid_y REAL NOT NULL,
		polar_moment REAL NOT NULL,
		net_px REAL NOT NULL,
		net_py REAL NOT NULL,
		net_mz REAL NOT NULL,
		critical_fastener TEXT NOT NULL,
		max_resultant REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		fastener_id TEXT NOT NULL,
		px REAL NOT NULL,
		py REAL NOT NULL,
		pm REAL NOT NULL,
		pm_x REAL NOT NULL,
		pm_y REAL NOT NULL,
		p_horizontal REAL NOT NULL,
		p_vertical REAL NOT NULL,
		resultant REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

// Run is a stored solve
type Run struct {
	ID               int64
	Name             string
	CreatedAt        time.Time
	AreaMode         string
	Fasteners        int
	Centroid         fastener.Point
	PolarMoment      float64
	Net              fastener.NetLoad
	CriticalFastener string
	MaxResultant     float64
}

// Store keeps a history of solves in a SQLite database
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenStore opens (or creates) the database at path
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate history %s: %w", path, err)
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the solution under name and returns the run id
func (s *Store) SaveRun(ctx context.Context, name string, sol *fastener.Solution) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	g := sol.Geometry
	net := sol.Loads.Net
	_, critical := sol.Critical()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (name, created_at, area_mode, fasteners, centroid_x, centroid_y,
			polar_moment, net_px, net_py, net_mz, critical_fastener, max_resultant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, s.now().UTC().Format(time.RFC3339Nano), g.Mode.String(), len(g.Fasteners),
		g.Centroid.X, g.Centroid.Y, g.PolarMoment, net.Px, net.Py, net.Mz,
		critical.ID, critical.Resultant,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, seq, fastener_id, px, py, pm, pm_x, pm_y,
			p_horizontal, p_vertical, resultant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, r := range sol.Results {
		if _, err := stmt.ExecContext(ctx, id, i, r.ID, r.Px, r.Py, r.Pm, r.PmX, r.PmY,
			r.PHorizontal, r.PVertical, r.Resultant); err != nil {
			return 0, fmt.Errorf("failed to insert result %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns every stored run, oldest first
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, area_mode, fasteners, centroid_x, centroid_y,
			polar_moment, net_px, net_py, net_mz, critical_fastener, max_resultant
		FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Name, &created, &r.AreaMode, &r.Fasteners,
			&r.Centroid.X, &r.Centroid.Y, &r.PolarMoment, &r.Net.Px, &r.Net.Py, &r.Net.Mz,
			&r.CriticalFastener, &r.MaxResultant); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %d: bad timestamp %q: %w", r.ID, created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the fastener results of a run in fastener order
func (s *Store) RunResults(ctx context.Context, id int64) ([]fastener.Result, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT fastener_id, px, py, pm, pm_x, pm_y, p_horizontal, p_vertical, resultant
		FROM results WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []fastener.Result
	for rows.Next() {
		var r fastener.Result
		if err := rows.Scan(&r.ID, &r.Px, &r.Py, &r.Pm, &r.PmX, &r.PmY,
			&r.PHorizontal, &r.PVertical, &r.Resultant); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
