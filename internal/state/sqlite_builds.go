package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrBuildNotFound is returned by GetBuild for an unknown ID.
var ErrBuildNotFound = errors.New("build not found")

const buildColumns = `id, source, target, status, out_dir, js_bytes, css_bytes, components, error, duration_ms, created_at`

// RecordBuild inserts b, filling in ID and CreatedAt when unset.
func (s *SQLiteStore) RecordBuild(b *Build) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if b.ID == "" {
		b.ID = generateID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	s.logger.Debug("recording build",
		slog.String("id", b.ID),
		slog.String("source", b.Source),
		slog.String("status", string(b.Status)))

	_, err := s.db.Exec(
		`INSERT INTO builds (`+buildColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Source, b.Target, string(b.Status), nullString(b.OutDir),
		b.JSBytes, b.CSSBytes, nullString(joinComponents(b.Components)), nullString(b.Error),
		b.Duration.Milliseconds(), b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}
	return nil
}

// GetBuild retrieves a build by ID.
func (s *SQLiteStore) GetBuild(id string) (*Build, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(`SELECT `+buildColumns+` FROM builds WHERE id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}
	return b, nil
}

// ListBuilds returns up to limit builds, newest first.
func (s *SQLiteStore) ListBuilds(limit int) ([]*Build, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`SELECT `+buildColumns+` FROM builds ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builds []*Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	return builds, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(sc scanner) (*Build, error) {
	var (
		b                          Build
		status                     string
		outDir, components, errMsg sql.NullString
		durationMS                 int64
	)
	if err := sc.Scan(&b.ID, &b.Source, &b.Target, &status, &outDir,
		&b.JSBytes, &b.CSSBytes, &components, &errMsg, &durationMS, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Status = BuildStatus(status)
	b.OutDir = outDir.String
	b.Components = splitComponents(components.String)
	b.Error = errMsg.String
	b.Duration = time.Duration(durationMS) * time.Millisecond
	return &b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
