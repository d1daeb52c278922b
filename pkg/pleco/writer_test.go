package pleco

import (
	"database/sql"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testMeta = Metadata{
	Name:      "Test Dictionary",
	MenuName:  "Test",
	ShortName: "Test",
	Icon:      "TD",
}

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pqb")
	w, err := Create(path, time.Unix(1700000000, 0), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	return w, path
}

func openArtifact(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWriterRoundTrip(t *testing.T) {
	w, path := newTestWriter(t)
	defer w.Abort()

	entries := []Entry{
		{UID: 1, Word: "日", Length: 1, Pron: "ri4", Defn: "Cangjie3:日a", SortKey: "ｒｉ４日"},
		{UID: 2, Word: "月", Length: 1, Pron: "yue4", Defn: "Cangjie3:月b", SortKey: "ｙｕｅ４月"},
	}
	for i := range entries {
		if err := w.AddEntry(&entries[i]); err != nil {
			t.Fatalf("add entry %d: %v", i+1, err)
		}
	}
	if err := w.Finish(testMeta, len(entries)); err != nil {
		t.Fatalf("finish: %v", err)
	}

	db := openArtifact(t, path)

	var word, pron, defn, sortkey string
	var created, modified, length int64
	var altword sql.NullString
	err := db.QueryRow(`SELECT word, altword, pron, defn, sortkey, created, modified, length
		FROM pleco_dict_entries WHERE uid = 1`).
		Scan(&word, &altword, &pron, &defn, &sortkey, &created, &modified, &length)
	if err != nil {
		t.Fatalf("query entry: %v", err)
	}
	if word != "日" || pron != "ri4" || sortkey != "ｒｉ４日" || length != 1 {
		t.Fatalf("unexpected entry row: %q %q %q %d", word, pron, sortkey, length)
	}
	if altword.Valid {
		t.Fatalf("altword must be NULL, got %q", altword.String)
	}
	if created != 1700000000 || modified != created {
		t.Fatalf("expected shared timestamp 1700000000, got created=%d modified=%d", created, modified)
	}

	var hzUnit string
	var hzUID, hzLen int64
	if err := db.QueryRow(`SELECT syllable, uid, length FROM pleco_dict_posdex_hz_1 WHERE uid = 2`).
		Scan(&hzUnit, &hzUID, &hzLen); err != nil {
		t.Fatalf("query hz posdex: %v", err)
	}
	if hzUnit != "月" || hzLen != 1 {
		t.Fatalf("unexpected hz row: %q %d", hzUnit, hzLen)
	}
	var pyUnit string
	if err := db.QueryRow(`SELECT syllable FROM pleco_dict_posdex_py_1 WHERE uid = 1`).
		Scan(&pyUnit); err != nil {
		t.Fatalf("query py posdex: %v", err)
	}
	if pyUnit != "ri4" {
		t.Fatalf("unexpected py row: %q", pyUnit)
	}

	var entryCount, formatVersion string
	if err := db.QueryRow(`SELECT propvalue FROM pleco_dict_properties WHERE propset = 0 AND propid = 'EntryCount'`).
		Scan(&entryCount); err != nil {
		t.Fatalf("query EntryCount: %v", err)
	}
	if entryCount != "2" {
		t.Fatalf("expected EntryCount 2, got %q", entryCount)
	}
	if err := db.QueryRow(`SELECT propvalue FROM pleco_dict_properties WHERE propset = 0 AND propid = 'FormatVersion'`).
		Scan(&formatVersion); err != nil {
		t.Fatalf("query FormatVersion: %v", err)
	}
	if formatVersion != "8" {
		t.Fatalf("expected FormatVersion 8, got %q", formatVersion)
	}

	var start, end, first, last int64
	if err := db.QueryRow(`SELECT starttime, endtime, startentry, endentry FROM pleco_dict_imports`).
		Scan(&start, &end, &first, &last); err != nil {
		t.Fatalf("query import record: %v", err)
	}
	if start != 1700000000 || end != 1700000000 || first != 1 || last != 2 {
		t.Fatalf("unexpected import record: %d %d %d %d", start, end, first, last)
	}

	var pageSize int
	if err := db.QueryRow(`PRAGMA page_size`).Scan(&pageSize); err != nil {
		t.Fatalf("query page_size: %v", err)
	}
	if pageSize != 1024 {
		t.Fatalf("expected page_size 1024, got %d", pageSize)
	}
}

func TestWriterSortKeyCollision(t *testing.T) {
	w, path := newTestWriter(t)
	defer w.Abort()

	if err := w.AddEntry(&Entry{UID: 1, Word: "日", Length: 1, SortKey: "ｒｉ４日"}); err != nil {
		t.Fatalf("add first entry: %v", err)
	}
	err := w.AddEntry(&Entry{UID: 2, Word: "月", Length: 1, SortKey: "ｒｉ４日"})
	if !errors.Is(err, ErrSortKeyCollision) {
		t.Fatalf("expected ErrSortKeyCollision, got %v", err)
	}

	w.Abort()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("aborted build left an artifact at %s", path)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("aborted build left a temp file")
	}
}

func TestWriterAbortLeavesNothing(t *testing.T) {
	w, path := newTestWriter(t)
	if err := w.AddEntry(&Entry{UID: 1, Word: "日", Length: 1, SortKey: "x"}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	w.Abort()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("abort left an artifact at %s", path)
	}
}

func TestWriterReplacesExistingArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pqb")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	w, err := Create(path, time.Unix(1700000000, 0), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Abort()
	if err := w.AddEntry(&Entry{UID: 1, Word: "日", Length: 1, Pron: "ri4", SortKey: "ｒｉ４日"}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := w.Finish(testMeta, 1); err != nil {
		t.Fatalf("finish: %v", err)
	}

	db := openArtifact(t, path)
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM pleco_dict_entries`).Scan(&count); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry, got %d", count)
	}
}

func TestWriterAbortAfterFinishIsNoop(t *testing.T) {
	w, path := newTestWriter(t)
	if err := w.AddEntry(&Entry{UID: 1, Word: "日", Length: 1, SortKey: "x"}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := w.Finish(testMeta, 1); err != nil {
		t.Fatalf("finish: %v", err)
	}
	w.Abort()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Abort after Finish must keep the artifact: %v", err)
	}
}
