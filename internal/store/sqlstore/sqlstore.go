// Package sqlstore is a reference RevisionProvider backed by Postgres,
// demonstrating the durable relational store exposing query-by-revision
// that the engine treats as an external collaborator (spec §6). Documents
// are stored one row per (revision_id, schema, name), the whole envelope
// as JSONB.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"

	"github.com/goccy/go-yaml"

	"github.com/deckhand/deckhand/internal/document"
)

// Store is a Postgres-backed store.RevisionProvider.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres at dsn and returns a Store. Callers own the
// returned Store's lifetime and must call Close when done.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the documents table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deckhand_documents (
			revision_id  INTEGER NOT NULL,
			schema_name  TEXT NOT NULL,
			doc_name     TEXT NOT NULL,
			bucket       TEXT NOT NULL,
			envelope     JSONB NOT NULL,
			PRIMARY KEY (revision_id, schema_name, doc_name)
		)`)
	if err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}

// Put persists one revision's documents, replacing any prior rows for
// that revision ID.
func (s *Store) Put(ctx context.Context, revisionID int, docs []document.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deckhand_documents WHERE revision_id = $1`, revisionID); err != nil {
		return fmt.Errorf("sqlstore: clear revision: %w", err)
	}

	for _, d := range docs {
		envelope, err := yaml.MarshalWithOptions(map[string]any{
			"schema":   d.SchemaName,
			"metadata": d.Metadata,
			"data":     d.Data,
		}, yaml.JSON())
		if err != nil {
			return fmt.Errorf("sqlstore: encode %s: %w", d.ID(), err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deckhand_documents (revision_id, schema_name, doc_name, bucket, envelope)
			VALUES ($1, $2, $3, $4, $5)`,
			revisionID, d.SchemaName, d.Metadata.Name, d.Bucket, envelope)
		if err != nil {
			return fmt.Errorf("sqlstore: insert %s: %w", d.ID(), err)
		}
	}

	return tx.Commit()
}

// Documents implements store.RevisionProvider.
func (s *Store) Documents(ctx context.Context, revisionID int) ([]document.Document, error) {
	if revisionID == document.Revision0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT bucket, envelope FROM deckhand_documents
		WHERE revision_id = $1 ORDER BY schema_name, doc_name`, revisionID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query revision %d: %w", revisionID, err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var bucket string
		var envelope []byte
		if err := rows.Scan(&bucket, &envelope); err != nil {
			return nil, fmt.Errorf("sqlstore: scan: %w", err)
		}
		var raw struct {
			Schema   string            `yaml:"schema"`
			Metadata document.Metadata `yaml:"metadata"`
			Data     any               `yaml:"data"`
		}
		if err := yaml.Unmarshal(envelope, &raw); err != nil {
			return nil, fmt.Errorf("sqlstore: decode envelope: %w", err)
		}
		docs = append(docs, document.Document{
			SchemaName: raw.Schema,
			Metadata:   raw.Metadata,
			Data:       raw.Data,
			Bucket:     bucket,
		})
	}
	return docs, rows.Err()
}
