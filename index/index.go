// Package index stores the symbols of a compilation in an SQLite database
// for use by editor tooling.
package index

import (
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/thoriumlang/thc-sub002/ast"
	"github.com/thoriumlang/thc-sub002/sem"
	"github.com/thoriumlang/thc-sub002/symbols"
	"github.com/thoriumlang/thc-sub002/types"
	"golang.org/x/crypto/blake2b"

	// The pure Go driver registers itself as "sqlite".
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS units (
	name   TEXT PRIMARY KEY,
	path   TEXT NOT NULL,
	digest TEXT NOT NULL,
	errors INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS symbols (
	scope  TEXT NOT NULL,
	name   TEXT NOT NULL,
	full   TEXT NOT NULL,
	kind   TEXT NOT NULL,
	symbol TEXT NOT NULL,
	loc    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS methods (
	type      TEXT NOT NULL,
	signature TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS symbols_name ON symbols (name);
CREATE INDEX IF NOT EXISTS symbols_full ON symbols (full);
`

// A DB is an open symbol index.
type DB struct {
	db *sql.DB
}

// A Unit is the index record of a source.
type Unit struct {
	Name string
	Path string
	// Digest is the hex-encoded BLAKE2b-256 digest of the source text.
	Digest string
	// Errors is the number of errors reported for the source.
	Errors int
}

// An Entry is the index record of a symbol.
type Entry struct {
	// Scope is the full name of the scope declaring the symbol.
	Scope string
	// Name is the name of the symbol in its scope.
	Name string
	// Full is Name qualified by Scope.
	Full   string
	Kind   string
	Symbol string
	// Loc is the location of the declaration, if any.
	Loc string
}

// Open opens the index at path, creating it if it does not exist.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the index.
func (d *DB) Close() error { return d.db.Close() }

// Digest returns the hex-encoded BLAKE2b-256 digest of text.
func Digest(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Write replaces the contents of the index
// with the units, the symbols of table,
// and the method sets of the types the units declare.
func (d *DB) Write(units []*sem.Unit, table *symbols.Table) (err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	for _, stmt := range []string{"DELETE FROM units", "DELETE FROM symbols", "DELETE FROM methods"} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	for _, u := range units {
		_, err := tx.Exec(
			"INSERT INTO units (name, path, digest, errors) VALUES (?, ?, ?, ?)",
			u.Name, u.Path, Digest(u.Text), len(u.Errs))
		if err != nil {
			return fmt.Errorf("index %s: %w", u.Name, err)
		}
		if u.Symbol() == nil {
			continue
		}
		for _, sig := range MethodSet(u.Name, table) {
			_, err := tx.Exec("INSERT INTO methods (type, signature) VALUES (?, ?)", u.Name, sig)
			if err != nil {
				return fmt.Errorf("index %s: %w", u.Name, err)
			}
		}
	}
	table.Walk(func(scope *symbols.Table) {
		if err != nil {
			return
		}
		for _, e := range scope.Symbols() {
			if err = insertSymbol(tx, scope, e); err != nil {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

func insertSymbol(tx *sql.Tx, scope *symbols.Table, e symbols.Entry) error {
	full := e.Name
	if s := scope.FullName(); s != "" {
		full = s + "." + e.Name
	}
	var loc string
	if d := e.Symbol.Decl(); d != nil && d.Pos() != nil {
		loc = d.Pos().Loc.String()
	}
	_, err := tx.Exec(
		"INSERT INTO symbols (scope, name, full, kind, symbol, loc) VALUES (?, ?, ?, ?, ?, ?)",
		scope.FullName(), e.Name, full, symbols.Kind(e.Symbol), e.Symbol.String(), loc)
	if err != nil {
		return fmt.Errorf("index %s: %w", full, err)
	}
	return nil
}

// Lookup returns the symbols whose name or full name is name,
// ordered by full name.
func (d *DB) Lookup(name string) ([]Entry, error) {
	rows, err := d.db.Query(
		"SELECT scope, name, full, kind, symbol, loc FROM symbols WHERE name = ? OR full = ? ORDER BY full, rowid",
		name, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var es []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Scope, &e.Name, &e.Full, &e.Kind, &e.Symbol, &e.Loc); err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	return es, rows.Err()
}

// Units returns the indexed units ordered by name.
func (d *DB) Units() ([]Unit, error) {
	rows, err := d.db.Query("SELECT name, path, digest, errors FROM units ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var us []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.Name, &u.Path, &u.Digest, &u.Errors); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	return us, rows.Err()
}

// MethodSet returns the signatures of the methods of the named type,
// its own and inherited, as resolved through table.
func MethodSet(name string, table *symbols.Table) []string {
	var sigs []string
	for _, m := range types.FromSpec(ast.Simple(name), table).Methods() {
		sigs = append(sigs, m.Signature())
	}
	return sigs
}

// Methods returns the indexed method signatures of the named type.
func (d *DB) Methods(typeName string) ([]string, error) {
	rows, err := d.db.Query("SELECT signature FROM methods WHERE type = ? ORDER BY rowid", typeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sigs []string
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, rows.Err()
}
