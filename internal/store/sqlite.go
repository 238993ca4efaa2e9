// Package store persists the lexical index to a SQLite database.
//
// Two logical artifacts are stored: the chunk table (the ordered corpus
// with metadata) and the statistics table (postings plus corpus-wide
// counters). Rebuilding always replaces both wholesale; there is no
// incremental update path.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/m32rimm/repoqa/internal/chunk"
	"github.com/m32rimm/repoqa/internal/index"
)

// DriverName is the SQLite driver to use (pure Go, no CGO required).
const DriverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id           INTEGER PRIMARY KEY,
	file_path    TEXT NOT NULL,
	start_char   INTEGER NOT NULL,
	end_char     INTEGER NOT NULL,
	chunk_type   TEXT NOT NULL,
	symbol_name  TEXT NOT NULL DEFAULT '',
	heading_path TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL,
	token_count  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS postings (
	term     TEXT NOT NULL,
	chunk_id INTEGER NOT NULL,
	tf       INTEGER NOT NULL,
	PRIMARY KEY (term, chunk_id)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore wraps the index database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers unblocked during the wholesale rewrite.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored artifacts with the given index in a single
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, ix *index.Index) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"chunks", "postings", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insertChunk, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, file_path, start_char, end_char, chunk_type,
			symbol_name, heading_path, content, token_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare chunk insert: %w", err)
	}
	defer insertChunk.Close()

	for i, c := range ix.Chunks {
		_, err := insertChunk.ExecContext(ctx, c.ID, c.FilePath, c.StartChar,
			c.EndChar, string(c.Type), c.SymbolName, c.HeadingPath, c.Text,
			ix.Lengths[i])
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.ID, err)
		}
	}

	insertPosting, err := tx.PrepareContext(ctx,
		"INSERT INTO postings (term, chunk_id, tf) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare posting insert: %w", err)
	}
	defer insertPosting.Close()

	for term, posting := range ix.Postings {
		for chunkID, tf := range posting {
			if _, err := insertPosting.ExecContext(ctx, term, chunkID, tf); err != nil {
				return fmt.Errorf("insert posting %q: %w", term, err)
			}
		}
	}

	meta := map[string]string{
		"total_chunks":     strconv.Itoa(ix.TotalChunks),
		"avg_chunk_length": strconv.FormatFloat(ix.AvgLength, 'g', -1, 64),
	}
	for key, value := range meta {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?)", key, value)
		if err != nil {
			return fmt.Errorf("insert meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reconstructs the in-memory index from the stored artifacts. Returns
// index.ErrNotIndexed when nothing has been indexed yet.
func (s *SQLiteStore) Load(ctx context.Context) (*index.Index, error) {
	total, err := s.metaInt(ctx, "total_chunks")
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, index.ErrNotIndexed
	}

	avgStr, err := s.metaValue(ctx, "avg_chunk_length")
	if err != nil {
		return nil, err
	}
	avg, err := strconv.ParseFloat(avgStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse avg_chunk_length: %w", err)
	}

	ix := &index.Index{
		Postings:    make(map[string]map[int]int),
		AvgLength:   avg,
		TotalChunks: total,
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, start_char, end_char, chunk_type,
			symbol_name, heading_path, content, token_count
		FROM chunks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c chunk.Chunk
		var typ string
		var tokens int
		err := rows.Scan(&c.ID, &c.FilePath, &c.StartChar, &c.EndChar, &typ,
			&c.SymbolName, &c.HeadingPath, &c.Text, &tokens)
		if err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		c.Type = chunk.Type(typ)
		ix.Chunks = append(ix.Chunks, c)
		ix.Lengths = append(ix.Lengths, tokens)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	postingRows, err := s.db.QueryContext(ctx,
		"SELECT term, chunk_id, tf FROM postings")
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer postingRows.Close()

	for postingRows.Next() {
		var term string
		var chunkID, tf int
		if err := postingRows.Scan(&term, &chunkID, &tf); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		posting := ix.Postings[term]
		if posting == nil {
			posting = make(map[int]int)
			ix.Postings[term] = posting
		}
		posting[chunkID] = tf
	}
	if err := postingRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate postings: %w", err)
	}

	return ix, nil
}

func (s *SQLiteStore) metaValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", index.ErrNotIndexed
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) metaInt(ctx context.Context, key string) (int, error) {
	value, err := s.metaValue(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse meta %s: %w", key, err)
	}
	return n, nil
}
