package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fs := make(fstest.MapFS, len(files))
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

func TestApplyFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":  "CREATE TABLE one (id INTEGER);",
		"002_more.sql":  "CREATE TABLE two (id INTEGER);",
		"ignore_me.txt": "not a migration",
	}))

	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	for _, table := range []string{"one", "two"} {
		if _, err := db.Exec("INSERT INTO " + table + " (id) VALUES (1)"); err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestApplyIsIncremental(t *testing.T) {
	db := openTestDB(t)
	v1 := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE one (id INTEGER);",
	})

	if _, err := NewRunner(db, v1).Apply(nil); err != nil {
		t.Fatalf("first Apply() failed: %v", err)
	}

	v2 := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE one (id INTEGER);",
		"002_more.sql": "CREATE TABLE two (id INTEGER);",
	})
	applied, err := NewRunner(db, v2).Apply(nil)
	if err != nil {
		t.Fatalf("second Apply() failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied %d migrations on upgrade, want just the new one", applied)
	}

	// Nothing left to do.
	applied, err = NewRunner(db, v2).Apply(nil)
	if err != nil {
		t.Fatalf("third Apply() failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("applied %d migrations when up to date, want 0", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE one (id INTEGER);",
		"002_bad.sql":  "CREATE BOGUS SYNTAX;",
	}))

	if _, err := runner.Apply(nil); err == nil {
		t.Fatal("Apply() with a broken migration should fail")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() failed: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d after failed migration, want 1", version)
	}
}

func TestNewerDatabaseRejected(t *testing.T) {
	db := openTestDB(t)
	newer := migrationFS(map[string]string{
		"001_init.sql":   "CREATE TABLE one (id INTEGER);",
		"002_future.sql": "CREATE TABLE two (id INTEGER);",
	})
	if _, err := NewRunner(db, newer).Apply(nil); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	older := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE one (id INTEGER);",
	})
	if err := NewRunner(db, older).ValidateVersion(); err == nil {
		t.Error("ValidateVersion() should reject a database from a newer build")
	}
	if _, err := NewRunner(db, older).Apply(nil); err == nil {
		t.Error("Apply() should reject a database from a newer build")
	}
}

func TestBadMigrationFilenames(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		name string
		file string
	}{
		{"no version prefix", "init.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(db, migrationFS(map[string]string{
				tt.file: "CREATE TABLE x (id INTEGER);",
			}))
			if _, err := runner.Apply(nil); err == nil {
				t.Errorf("Apply() accepted bad filename %q", tt.file)
			}
		})
	}
}

func TestDuplicateVersionsRejected(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
		"001_b.sql": "CREATE TABLE b (id INTEGER);",
	}))

	if _, err := runner.Apply(nil); err == nil {
		t.Error("Apply() accepted duplicate migration versions")
	}
}
