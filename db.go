package palgen

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/palgen/palette"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a named palette is not in the database.
var ErrNotFound = errors.New("palette not found")

// PaletteDB is a store of named palettes backed by SQLite.
type PaletteDB struct {
	db *sql.DB
}

// Entry describes a stored palette.
type Entry struct {
	Name   string
	Colors int
	SHA1   string
}

// NewPaletteDB opens, and if necessary creates, the database in file.
func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, colors INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

func (db *PaletteDB) Close() error {
	return db.db.Close()
}

// Add stores p under name, replacing any palette already stored with that
// name. It reports whether the stored palette changed.
func (db *PaletteDB) Add(name string, p palette.Palette) (bool, error) {
	if name == "" {
		return false, errors.New("empty palette name")
	}

	b := p.Bytes()
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var existing string
	switch err := db.db.QueryRow("SELECT sha1 FROM palette WHERE name = ?", name).Scan(&existing); err {
	case sql.ErrNoRows:
		if _, err := db.db.Exec("INSERT INTO palette (name, sha1, colors, data) VALUES (?, ?, ?, ?)", name, sha, len(p), b); err != nil {
			return false, err
		}
		return true, nil
	case nil:
		if existing == sha {
			return false, nil
		}
		if _, err := db.db.Exec("UPDATE palette SET sha1 = ?, colors = ?, data = ? WHERE name = ?", sha, len(p), b, name); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Find returns the palette stored under name, or ErrNotFound.
func (db *PaletteDB) Find(name string) (palette.Palette, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM palette WHERE name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	case nil:
		return palette.Records(data), nil
	default:
		return nil, err
	}
}

// List returns every stored palette ordered by name.
func (db *PaletteDB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT name, colors, sha1 FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Colors, &e.SHA1); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
