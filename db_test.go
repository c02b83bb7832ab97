package main

import (
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"
)

func memoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateEmbedded(t *testing.T) {
	db := memoryDB(t)
	for i := 0; i < 2; i++ {
		if err := migrate(db, migrations); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("recorded migrations = %d", n)
	}
	if _, err := db.Exec(`INSERT INTO hiscores(board, tiles, player, score) VALUES ('b', 'T', 'p', 1)`); err != nil {
		t.Errorf("hiscores table missing: %v", err)
	}
}

func TestMigrateOrderAndFailure(t *testing.T) {
	db := memoryDB(t)
	fsys := fstest.MapFS{
		"sql/002_more.sql": {Data: []byte(`ALTER TABLE t ADD COLUMN b TEXT;`)},
		"sql/001_base.sql": {Data: []byte(`CREATE TABLE t (a TEXT);`)},
		"sql/notes.txt":    {Data: []byte(`ignored`)},
	}
	if err := migrate(db, fsys); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO t(a, b) VALUES ('x', 'y')`); err != nil {
		t.Errorf("migrations ran out of order: %v", err)
	}

	fsys["sql/003_broken.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE;`)}
	err := migrate(db, fsys)
	if err == nil || !strings.Contains(err.Error(), "003_broken") {
		t.Fatalf("err = %v", err)
	}
	var n int
	_ = db.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name = 'sql/003_broken.sql'`).Scan(&n)
	if n != 0 {
		t.Error("failed migration was recorded")
	}
}
