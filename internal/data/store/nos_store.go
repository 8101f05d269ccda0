// Package store handles database access for the nature-of-suit lookup table.
// The nos table maps each civil nature-of-suit code to its JNET grouping
// description ("Contract", "Prisoner Petitions", ...), used to label cases
// before analysis.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// NOSStore reads the nature-of-suit grouping table.
type NOSStore struct {
	db *sql.DB
}

// NewNOSStore creates a store over an open database handle.
func NewNOSStore(db *sql.DB) *NOSStore {
	return &NOSStore{db: db}
}

// Open connects to the lookup database and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach lookup database: %w", err)
	}
	return db, nil
}

// GroupLookup loads the full code-to-group mapping.
func (s *NOSStore) GroupLookup(ctx context.Context) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT nos_code, nos_group FROM nos`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nos table: %w", err)
	}
	defer rows.Close()

	lookup := make(map[int]string)
	for rows.Next() {
		var code int
		var group string
		if err := rows.Scan(&code, &group); err != nil {
			return nil, fmt.Errorf("failed to scan nos row: %w", err)
		}
		lookup[code] = group
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nos table: %w", err)
	}
	return lookup, nil
}

// ApplyGrouping labels each case with its nature-of-suit group. Codes absent
// from the lookup leave the group empty; the case still processes.
func ApplyGrouping(cases []model.CaseMeta, lookup map[int]string) {
	for i := range cases {
		cases[i].Group = lookup[cases[i].NatureOfSuit]
	}
}

// habeasGroup is the JNET grouping for habeas corpus petitions. Habeas cases
// follow a separate procedural track and never enter a milestone batch.
const habeasGroup = "Habeas Corpus"

// ExcludeHabeas drops habeas corpus cases from a grouped batch. Ungrouped
// cases pass through.
func ExcludeHabeas(cases []model.CaseMeta) []model.CaseMeta {
	out := cases[:0]
	for _, c := range cases {
		if c.Group == habeasGroup {
			continue
		}
		out = append(out, c)
	}
	return out
}
