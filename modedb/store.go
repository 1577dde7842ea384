package modedb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/modeline/mode"
)

// Store persists catalog entries.
type Store interface {
	// Insert buffers an entry for writing.
	Insert(e Entry)

	// Delete removes an entry, buffered or written.
	Delete(id string) error

	// Flush writes all the buffered entries.
	Flush() error

	// LoadAll returns every written entry in insertion order.
	LoadAll() ([]Entry, error)

	// Close flushes and releases the store.
	Close() error
}

const createModesTableSQL = `CREATE TABLE IF NOT EXISTS modes (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL,
	hdisplay INTEGER, hsync_start INTEGER, hsync_end INTEGER, htotal INTEGER,
	vdisplay INTEGER, vsync_start INTEGER, vsync_end INTEGER, vtotal INTEGER,
	vscan INTEGER,
	clock INTEGER,
	flags INTEGER
);`

const insertModeSQL = `INSERT INTO modes (
	id, source,
	hdisplay, hsync_start, hsync_end, htotal,
	vdisplay, vsync_start, vsync_end, vtotal,
	vscan, clock, flags
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectModesSQL = `SELECT
	id, source,
	hdisplay, hsync_start, hsync_end, htotal,
	vdisplay, vsync_start, vsync_end, vtotal,
	vscan, clock, flags
FROM modes ORDER BY seq`

// SQLiteStore is the store that writes entries into a SQLite database.
// Inserted entries are buffered and written in one transaction per flush.
type SQLiteStore struct {
	*sql.DB

	lock      sync.Mutex
	dbName    string
	batchSize int
	pending   []Entry
}

// NewSQLiteStore opens, or creates, the database file at path. An empty path
// creates a uniquely named file in the working directory. The buffered
// entries are flushed when the program exits through atexit.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	s := &SQLiteStore{
		dbName:    path,
		batchSize: 1000,
	}

	if err := s.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() {
		if err := s.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush %s: %v\n", s.dbName, err)
		}
	})

	return s, nil
}

// NewSQLiteStoreWithDB creates a store on an already opened database.
func NewSQLiteStoreWithDB(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{
		DB:        db,
		batchSize: 1000,
	}

	if _, err := s.Exec(createModesTableSQL); err != nil {
		return nil, fmt.Errorf("create modes table: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) init() error {
	if s.dbName == "" {
		s.dbName = "modeline_catalog_" + xid.New().String() + ".sqlite3"
		fmt.Fprintf(os.Stderr, "Database created for catalog: %s\n", s.dbName)
	}

	db, err := sql.Open("sqlite3", s.dbName)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.dbName, err)
	}

	s.DB = db

	if _, err := s.Exec(createModesTableSQL); err != nil {
		return fmt.Errorf("create modes table: %w", err)
	}

	return nil
}

// Path returns the database file name.
func (s *SQLiteStore) Path() string {
	return s.dbName
}

// Insert buffers the entry. The buffer is flushed once it reaches the batch
// size.
func (s *SQLiteStore) Insert(e Entry) {
	s.lock.Lock()
	s.pending = append(s.pending, e)
	full := len(s.pending) >= s.batchSize
	s.lock.Unlock()

	if full {
		if err := s.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush %s: %v\n", s.dbName, err)
		}
	}
}

// Flush writes the buffered entries in a single transaction.
func (s *SQLiteStore) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	stmt, err := tx.Prepare(insertModeSQL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("flush: %w", err)
	}
	defer stmt.Close()

	for _, e := range s.pending {
		m := e.Mode
		_, err := stmt.Exec(
			e.ID, e.Source,
			m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal,
			m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal,
			m.VScan, m.Clock, int64(m.Flags.Bits()),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("flush %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	s.pending = nil

	return nil
}

// Delete removes the entry from the buffer and from the database.
func (s *SQLiteStore) Delete(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	kept := s.pending[:0]
	for _, e := range s.pending {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.pending = kept

	if _, err := s.Exec("DELETE FROM modes WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	return nil
}

// LoadAll reads the written entries. Buffered entries are not included.
func (s *SQLiteStore) LoadAll() ([]Entry, error) {
	rows, err := s.Query(selectModesSQL)
	if err != nil {
		return nil, fmt.Errorf("load modes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			flags int64
		)

		m := &e.Mode
		err := rows.Scan(
			&e.ID, &e.Source,
			&m.HDisplay, &m.HSyncStart, &m.HSyncEnd, &m.HTotal,
			&m.VDisplay, &m.VSyncStart, &m.VSyncEnd, &m.VTotal,
			&m.VScan, &m.Clock, &flags,
		)
		if err != nil {
			return nil, fmt.Errorf("load modes: %w", err)
		}

		m.Flags = mode.FlagsFromBits(uint32(flags))
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load modes: %w", err)
	}

	return entries, nil
}

// Close flushes the buffered entries and closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}

	return s.DB.Close()
}
