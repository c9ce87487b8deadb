// Package evalcache is a SQLite-backed cache of compiled-program
// metadata, so a long-running server (cmd/bel-server) doesn't re-parse
// an expression it has already seen. The teacher's go.mod carries
// modernc.org/sqlite (pure-Go, cgo-free) as a dependency without any
// in-tree caller in the retrieved subset of its source; this package
// gives it one, using the standard database/sql idiom (Open, an
// if-not-exists schema migration, prepared statements) rather than
// anything grpc- or language-specific, since no example repo in the
// pack exercises modernc.org/sqlite directly either.
package evalcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"github.com/funvibe/bel/pkg/bel"
)

// Entry is one cached compiled-program record.
type Entry struct {
	Hash      string
	Source    string
	Variables []string
	Functions []string
}

// Cache wraps a SQLite database storing Entry rows keyed by content hash.
type Cache struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS programs (
	hash      TEXT PRIMARY KEY,
	source    TEXT NOT NULL,
	variables TEXT NOT NULL,
	functions TEXT NOT NULL
);
`

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("evalcache: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("evalcache: migrating schema: %w", err)
	}
	return &Cache{db: db, path: path}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SizeHuman returns the cache database's on-disk size as a human-readable
// string (e.g. "42 kB"), for startup/status logging.
func (c *Cache) SizeHuman() (string, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return "", fmt.Errorf("evalcache: stat %s: %w", c.path, err)
	}
	return humanize.Bytes(uint64(info.Size())), nil
}

// Hash returns the content hash evalcache uses to key a program by its
// source text.
func Hash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached Entry for source's hash, if present.
func (c *Cache) Lookup(ctx context.Context, source string) (Entry, bool, error) {
	hash := Hash(source)
	row := c.db.QueryRowContext(ctx,
		`SELECT hash, source, variables, functions FROM programs WHERE hash = ?`, hash)

	var e Entry
	var varsJSON, funcsJSON string
	if err := row.Scan(&e.Hash, &e.Source, &varsJSON, &funcsJSON); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("evalcache: lookup: %w", err)
	}
	if err := json.Unmarshal([]byte(varsJSON), &e.Variables); err != nil {
		return Entry{}, false, fmt.Errorf("evalcache: decoding variables: %w", err)
	}
	if err := json.Unmarshal([]byte(funcsJSON), &e.Functions); err != nil {
		return Entry{}, false, fmt.Errorf("evalcache: decoding functions: %w", err)
	}
	return e, true, nil
}

// Store compiles source (if Lookup missed) and persists its reference
// lists, returning the compiled Program either way.
func (c *Cache) Store(ctx context.Context, source string) (*bel.Program, error) {
	program, errs := bel.Compile(source)
	if errs != nil {
		return nil, errs
	}
	refs := program.References()
	varsJSON, err := json.Marshal(refs.Variables)
	if err != nil {
		return nil, fmt.Errorf("evalcache: encoding variables: %w", err)
	}
	funcsJSON, err := json.Marshal(refs.Functions)
	if err != nil {
		return nil, fmt.Errorf("evalcache: encoding functions: %w", err)
	}
	hash := Hash(source)
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO programs (hash, source, variables, functions) VALUES (?, ?, ?, ?)
		 ON CONFLICT(hash) DO NOTHING`,
		hash, source, string(varsJSON), string(funcsJSON))
	if err != nil {
		return nil, fmt.Errorf("evalcache: storing entry: %w", err)
	}
	return program, nil
}

// CompileCached returns a compiled Program for source, consulting the
// cache first and recompiling+storing only on a miss. The cache records
// reference metadata for inspection; the returned *bel.Program is always
// freshly compiled (Program is not itself serializable), so a hit still
// costs one parse — the metadata lookup is what the cache actually saves
// call sites from recomputing, e.g. a gRPC handler checking a request's
// declared variables against Entry.Variables before compiling at all.
func (c *Cache) CompileCached(ctx context.Context, source string) (*bel.Program, Entry, error) {
	if entry, ok, err := c.Lookup(ctx, source); err != nil {
		return nil, Entry{}, err
	} else if ok {
		program, errs := bel.Compile(source)
		if errs != nil {
			return nil, Entry{}, errs
		}
		return program, entry, nil
	}
	program, err := c.Store(ctx, source)
	if err != nil {
		return nil, Entry{}, err
	}
	return program, Entry{
		Hash:      Hash(source),
		Source:    source,
		Variables: program.References().Variables,
		Functions: program.References().Functions,
	}, nil
}
