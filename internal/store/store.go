// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the genealogical record set in a local SQLite
// database and hands it back in a stable order. Every row carries an
// explicit position so that repeated loads iterate people and unions in
// insertion order, which the generation resolver's tie-breaks depend on.
// The store also derives each person's union memberships from the union
// rows, so loaded records are referentially consistent by construction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lineage-press/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "lineage.db"
)

// Store manages the record set SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the record database at dataDir/index/lineage.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS people (
			handle TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT,
			birth_year INTEGER,
			death_year INTEGER,
			living INTEGER NOT NULL DEFAULT 0,
			patrilineal INTEGER NOT NULL DEFAULT 0,
			generation_hint INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS unions (
			handle TEXT PRIMARY KEY,
			father TEXT,
			mother TEXT,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS union_children (
			union_handle TEXT NOT NULL REFERENCES unions(handle) ON DELETE CASCADE,
			child_handle TEXT NOT NULL REFERENCES people(handle),
			position INTEGER NOT NULL,
			PRIMARY KEY (union_handle, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_union_children_child ON union_children(child_handle)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load returns the full record set in insertion order, with each person's
// Families and ParentFamilies derived from the union rows.
func (s *Store) Load(ctx context.Context) ([]types.Person, []types.FamilyUnion, error) {
	people, err := s.loadPeople(ctx)
	if err != nil {
		return nil, nil, err
	}
	unions, err := s.loadUnions(ctx)
	if err != nil {
		return nil, nil, err
	}
	attachMemberships(people, unions)
	return people, unions, nil
}

func (s *Store) loadPeople(ctx context.Context) ([]types.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT handle, name, gender, birth_year, death_year, living, patrilineal, generation_hint
		 FROM people ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	var people []types.Person
	for rows.Next() {
		var (
			p      types.Person
			gender sql.NullString
			living int
			patri  int
		)
		if err := rows.Scan(&p.Handle, &p.Name, &gender, &p.BirthYear, &p.DeathYear,
			&living, &patri, &p.GenerationHint); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		if gender.Valid {
			p.Gender = types.Gender(gender.String)
		}
		p.Living = living != 0
		p.Patrilineal = patri != 0
		people = append(people, p)
	}
	return people, rows.Err()
}

func (s *Store) loadUnions(ctx context.Context) ([]types.FamilyUnion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT handle, father, mother FROM unions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying unions: %w", err)
	}
	defer rows.Close()

	var unions []types.FamilyUnion
	byHandle := make(map[string]int)
	for rows.Next() {
		var (
			u              types.FamilyUnion
			father, mother sql.NullString
		)
		if err := rows.Scan(&u.Handle, &father, &mother); err != nil {
			return nil, fmt.Errorf("scanning union: %w", err)
		}
		u.Father = father.String
		u.Mother = mother.String
		byHandle[u.Handle] = len(unions)
		unions = append(unions, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	childRows, err := s.db.QueryContext(ctx,
		`SELECT union_handle, child_handle FROM union_children ORDER BY union_handle, position`)
	if err != nil {
		return nil, fmt.Errorf("querying union children: %w", err)
	}
	defer childRows.Close()

	for childRows.Next() {
		var unionHandle, childHandle string
		if err := childRows.Scan(&unionHandle, &childHandle); err != nil {
			return nil, fmt.Errorf("scanning union child: %w", err)
		}
		if i, ok := byHandle[unionHandle]; ok {
			unions[i].Children = append(unions[i].Children, childHandle)
		}
	}
	return unions, childRows.Err()
}

// attachMemberships fills Families and ParentFamilies from the union rows,
// in union order.
func attachMemberships(people []types.Person, unions []types.FamilyUnion) {
	byHandle := make(map[string]*types.Person, len(people))
	for i := range people {
		byHandle[people[i].Handle] = &people[i]
	}
	for _, u := range unions {
		for _, parent := range []string{u.Father, u.Mother} {
			if p, ok := byHandle[parent]; ok {
				p.Families = append(p.Families, u.Handle)
			}
		}
		for _, child := range u.Children {
			if p, ok := byHandle[child]; ok {
				p.ParentFamilies = append(p.ParentFamilies, u.Handle)
			}
		}
	}
}

// GetPerson returns one person by handle, with memberships attached.
func (s *Store) GetPerson(ctx context.Context, handle string) (types.Person, error) {
	people, _, err := s.Load(ctx)
	if err != nil {
		return types.Person{}, err
	}
	for _, p := range people {
		if p.Handle == handle {
			return p, nil
		}
	}
	return types.Person{}, fmt.Errorf("person %s not found", handle)
}

// ReplaceAll overwrites the whole record set in one transaction, assigning
// positions from the slice order. Used by remote sync.
func (s *Store) ReplaceAll(ctx context.Context, people []types.Person, unions []types.FamilyUnion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM union_children`,
		`DELETE FROM unions`,
		`DELETE FROM people`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing records: %w", err)
		}
	}

	for i, p := range people {
		if err := insertPerson(ctx, tx, p, i); err != nil {
			return err
		}
	}
	for i, u := range unions {
		if err := insertUnion(ctx, tx, u, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertPerson(ctx context.Context, tx *sql.Tx, p types.Person, position int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO people (handle, name, gender, birth_year, death_year, living, patrilineal, generation_hint, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(handle) DO UPDATE SET
			name=excluded.name, gender=excluded.gender,
			birth_year=excluded.birth_year, death_year=excluded.death_year,
			living=excluded.living, patrilineal=excluded.patrilineal,
			generation_hint=excluded.generation_hint`,
		p.Handle, p.Name, string(p.Gender), p.BirthYear, p.DeathYear,
		boolInt(p.Living), boolInt(p.Patrilineal), p.GenerationHint, position,
	)
	if err != nil {
		return fmt.Errorf("upserting person %s: %w", p.Handle, err)
	}
	return nil
}

func insertUnion(ctx context.Context, tx *sql.Tx, u types.FamilyUnion, position int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO unions (handle, father, mother, position)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(handle) DO UPDATE SET
			father=excluded.father, mother=excluded.mother`,
		u.Handle, u.Father, u.Mother, position,
	)
	if err != nil {
		return fmt.Errorf("upserting union %s: %w", u.Handle, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM union_children WHERE union_handle = ?`, u.Handle); err != nil {
		return fmt.Errorf("clearing children of union %s: %w", u.Handle, err)
	}
	for i, child := range u.Children {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO union_children (union_handle, child_handle, position) VALUES (?, ?, ?)`,
			u.Handle, child, i); err != nil {
			return fmt.Errorf("inserting child %s of union %s: %w", child, u.Handle, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
