package pleco

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrSortKeyCollision reports two distinct entries producing the same sort
// key. The store's UNIQUE constraint is the enforcement point; the build must
// fail rather than silently drop or overwrite an entry.
var ErrSortKeyCollision = errors.New("sort key collision")

// Writer assembles a dictionary artifact. All inserts run in one transaction
// against a temporary file; Finish commits and renames it onto the target
// path, so a failed build never leaves an artifact behind. Writer is not safe
// for concurrent use: entry order determines the uid contract.
type Writer struct {
	path     string
	tmp      string
	db       *sql.DB
	tx       *sql.Tx
	entryIns *sql.Stmt
	hzIns    [maxPosdexDepth]*sql.Stmt
	pyIns    [maxPosdexDepth]*sql.Stmt
	now      int64
	rng      *rand.Rand
	finished bool
}

// Storage configuration expected by the Pleco reader for small write-once
// artifacts. Values are part of the external contract.
var pragmas = []string{
	"PRAGMA page_size=1024;",
	"PRAGMA journal_mode=DELETE;",
	"PRAGMA synchronous=FULL;",
}

// Create removes any pre-existing artifact at path and opens a fresh store at
// a temporary sibling path with the fixed schema applied. now is the single
// timestamp shared by all entries and the import record; rng feeds the opaque
// file identifiers. Callers must end with Finish or Abort.
func Create(path string, now time.Time, rng *rand.Rand) (*Writer, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove existing artifact: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove stale temp artifact: %w", err)
	}

	db, err := sql.Open("sqlite3", tmp)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	// Single connection so pragmas and the transaction share one handle.
	db.SetMaxOpenConns(1)

	w := &Writer{path: path, tmp: tmp, db: db, now: now.Unix(), rng: rng}
	if err := w.init(); err != nil {
		w.Abort()
		return nil, err
	}
	return w, nil
}

func (w *Writer) init() error {
	for _, p := range pragmas {
		if _, err := w.db.Exec(p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	for _, ddl := range schemaStatements() {
		if _, err := w.db.Exec(ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("begin build transaction: %w", err)
	}
	w.tx = tx

	w.entryIns, err = tx.Prepare(`INSERT INTO pleco_dict_entries
		(uid, created, modified, length, word, altword, pron, defn, sortkey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	for i := 0; i < maxPosdexDepth; i++ {
		w.hzIns[i], err = tx.Prepare(fmt.Sprintf(
			"INSERT INTO %s (syllable, uid, length) VALUES (?, ?, ?)", posdexTable("hz", i+1)))
		if err != nil {
			return fmt.Errorf("prepare hz posdex insert: %w", err)
		}
		w.pyIns[i], err = tx.Prepare(fmt.Sprintf(
			"INSERT INTO %s (syllable, uid, length) VALUES (?, ?, ?)", posdexTable("py", i+1)))
		if err != nil {
			return fmt.Errorf("prepare py posdex insert: %w", err)
		}
	}
	return nil
}

// AddEntry inserts one entry row and its positional index rows. Entries must
// arrive in ascending uid order with dense 1-based uids.
func (w *Writer) AddEntry(e *Entry) error {
	_, err := w.entryIns.Exec(e.UID, w.now, w.now, e.Length, e.Word, nil, e.Pron, e.Defn, e.SortKey)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return fmt.Errorf("entry %q (sortkey %q): %w", e.Word, e.SortKey, ErrSortKeyCollision)
		}
		return fmt.Errorf("insert entry %q: %w", e.Word, err)
	}

	hz, py := PositionRows(e.UID, e.Word, e.Pron)
	for i, row := range hz {
		if _, err := w.hzIns[i].Exec(row.Unit, row.UID, row.Length); err != nil {
			return fmt.Errorf("insert hz posdex row for %q: %w", e.Word, err)
		}
	}
	for i, row := range py {
		if _, err := w.pyIns[i].Exec(row.Unit, row.UID, row.Length); err != nil {
			return fmt.Errorf("insert py posdex row for %q: %w", e.Word, err)
		}
	}
	return nil
}

// Finish writes the property records and the import-log row covering uids
// [1, count], commits, and moves the artifact to its target path.
func (w *Writer) Finish(meta Metadata, count int) error {
	for _, p := range buildProperties(meta, count, w.now, w.rng) {
		isString := 0
		if p.isString {
			isString = 1
		}
		_, err := w.tx.Exec(`INSERT OR REPLACE INTO pleco_dict_properties
			(propset, propid, propvalue, propisstring) VALUES (0, ?, ?, ?)`,
			p.id, p.value, isString)
		if err != nil {
			return fmt.Errorf("write property %s: %w", p.id, err)
		}
	}

	_, err := w.tx.Exec(`INSERT INTO pleco_dict_imports
		(starttime, endtime, startentry, endentry) VALUES (?, ?, 1, ?)`,
		w.now, w.now, count)
	if err != nil {
		return fmt.Errorf("write import record: %w", err)
	}

	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit artifact: %w", err)
	}
	w.tx = nil
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	w.db = nil
	if err := os.Rename(w.tmp, w.path); err != nil {
		return fmt.Errorf("move artifact into place: %w", err)
	}
	w.finished = true
	return nil
}

// Abort discards the build. Safe to call after Finish (then a no-op) and on
// half-initialized writers, so callers can defer it unconditionally.
func (w *Writer) Abort() {
	if w.finished {
		return
	}
	if w.tx != nil {
		_ = w.tx.Rollback()
		w.tx = nil
	}
	if w.db != nil {
		_ = w.db.Close()
		w.db = nil
	}
	_ = os.Remove(w.tmp)
}

// isUniqueConstraintErr reports whether err is a sqlite UNIQUE violation.
func isUniqueConstraintErr(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
