package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deckhand/deckhand/internal/config"
	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/store/sqlstore"
)

// loadRevision assembles the revision a command operates on, choosing
// between the local document directory and the Postgres-backed
// sqlstore.Store per cfg.StoreKind.
func loadRevision(ctx context.Context, cfg *config.Config) (document.Revision, error) {
	if !cfg.UsesPostgres() {
		return loadDirectory(cfg.DocumentsDir)
	}
	return loadPostgresRevision(ctx, cfg.PostgresDSN, cfg.RevisionID)
}

func loadPostgresRevision(ctx context.Context, dsn string, revisionID int) (document.Revision, error) {
	s, err := sqlstore.Open(dsn)
	if err != nil {
		return document.Revision{}, err
	}
	defer s.Close()

	docs, err := s.Documents(ctx, revisionID)
	if err != nil {
		return document.Revision{}, err
	}
	return document.Revision{ID: revisionID, Documents: docs}, nil
}

// loadDirectory reads every *.yaml/*.yml file under dir as a
// multi-document YAML stream and assembles revision 1 from them. Each
// file's basename (without extension) becomes the bucket owning its
// documents, since the wire envelope itself carries no bucket (spec §3).
func loadDirectory(dir string) (document.Revision, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return document.Revision{}, fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []document.Document
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return document.Revision{}, fmt.Errorf("read %s: %w", path, err)
		}
		bucket := strings.TrimSuffix(name, filepath.Ext(name))

		fileDocs, err := document.DecodeStream(path, data)
		if err != nil {
			return document.Revision{}, err
		}
		for i := range fileDocs {
			fileDocs[i].Bucket = bucket
		}
		docs = append(docs, fileDocs...)
	}

	return document.Revision{ID: 1, Documents: docs}, nil
}
