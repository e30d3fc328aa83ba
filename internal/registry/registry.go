// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry holds the read-only project metadata table backing the
// project_id adapter path. The registry is populated by importing a CSV
// export of the institutional project report into SQLite and is read-only
// at generation time.
package registry

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

const dbFile = "registry.db"

// ErrNotFound marks a project_id with no registry record.
var ErrNotFound = errors.New("project not found")

// defaultMaxKeywords caps the keywords derived per project.
const defaultMaxKeywords = 12

// Project is one registry record.
type Project struct {
	// ProjectID is the stable identifier. Taken from the source's natural
	// key column when mapped, otherwise generated as a zero-padded sequence
	// number at import time.
	ProjectID string

	// Title is the project title used as generation seed content.
	Title string

	// ReferenceText is the human-written description used as evaluation
	// ground truth. Never fed into the prompt.
	ReferenceText string

	// Attrs holds every source column for keyword derivation and inspection.
	Attrs map[string]string

	// Position is the row's import order.
	Position int
}

// Store is the SQLite-backed registry.
type Store struct {
	db          *sql.DB
	mapping     ColumnMapping
	maxKeywords int
}

// Open opens or creates the registry database at <registry_dir>/registry.db
// and loads the column mapping named in the config.
func Open(cfg types.RegistryConfig) (*Store, error) {
	mapping, err := LoadMapping(cfg.MappingFile)
	if err != nil {
		return nil, err
	}

	dir := cfg.RegistryDir
	if dir == "" {
		dir = "registry"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	maxKeywords := cfg.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = defaultMaxKeywords
	}

	s := &Store{db: db, mapping: mapping, maxKeywords: maxKeywords}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS projects (
		project_id TEXT PRIMARY KEY,
		title TEXT,
		reference_text TEXT,
		attrs TEXT,
		position INTEGER
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// ImportCSV loads a CSV table (header row required) into the registry,
// replacing records with matching IDs. Rows without a mapped natural key get
// deterministic proj-NNNN identifiers from their position. Returns the
// number of imported rows.
func (s *Store) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO projects (project_id, title, reference_text, attrs, position)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading CSV row %d: %w", count+1, err)
		}

		attrs := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				attrs[col] = strings.TrimSpace(record[i])
			}
		}

		projectID := cleanValue(attrs[s.mapping.IDColumn])
		if projectID == "" {
			projectID = fmt.Sprintf("proj-%04d", count)
		}

		attrsJSON, err := json.Marshal(attrs)
		if err != nil {
			return 0, fmt.Errorf("encoding attributes for %s: %w", projectID, err)
		}

		_, err = stmt.ExecContext(ctx, projectID,
			cleanValue(attrs[s.mapping.TitleColumn]),
			cleanValue(attrs[s.mapping.ReferenceColumn]),
			string(attrsJSON), count)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", projectID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

// Lookup returns the record for projectID, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, projectID string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT project_id, title, reference_text, attrs, position FROM projects WHERE project_id = ?`,
		projectID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", projectID, err)
	}
	return p, nil
}

// List returns all registry records in import order.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, title, reference_text, attrs, position FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Keywords derives the keyword list for a project from the mapped keyword
// columns: split on commas and semicolons, trim, drop blanks and NaN-ish
// placeholders, deduplicate order-preserving, cap at the configured maximum.
func (s *Store) Keywords(p *Project) []string {
	return ExtractKeywords(p.Attrs, s.mapping.KeywordColumns, s.maxKeywords)
}

// ExtractKeywords implements the fixed-column keyword derivation rule.
func ExtractKeywords(attrs map[string]string, columns []string, max int) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, col := range columns {
		val := cleanValue(attrs[col])
		if val == "" {
			continue
		}
		for _, part := range strings.Split(strings.ReplaceAll(val, ";", ","), ",") {
			kw := strings.TrimSpace(part)
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
			if max > 0 && len(keywords) >= max {
				return keywords
			}
		}
	}
	return keywords
}

// scanner abstracts over *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (*Project, error) {
	var p Project
	var attrsJSON string
	if err := sc.Scan(&p.ProjectID, &p.Title, &p.ReferenceText, &attrsJSON, &p.Position); err != nil {
		return nil, err
	}
	if attrsJSON != "" {
		if err := json.Unmarshal([]byte(attrsJSON), &p.Attrs); err != nil {
			return nil, fmt.Errorf("parsing attributes: %w", err)
		}
	}
	return &p, nil
}

// cleanValue trims a source cell and drops spreadsheet NaN placeholders.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
