// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Hit is one stored chunk matching a query.
type Hit struct {
	Path    string `json:"path" yaml:"path"`
	Seq     int    `json:"seq" yaml:"seq"`
	Content string `json:"content" yaml:"content"`
}

// Search returns chunks containing query as a case-insensitive substring,
// ordered by path and position. A non-positive limit uses the default of 20.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, seq, content FROM chunks
		 WHERE content LIKE ? ESCAPE '\'
		 ORDER BY path, seq
		 LIMIT ?`,
		"%"+escapeLike(query)+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Path, &h.Seq, &h.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Chunks returns the stored chunks of the document at path in order.
func (s *Store) Chunks(ctx context.Context, path string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM chunks WHERE path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}
	defer rows.Close()

	var chunks []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
