package shared

import (
	"database/sql"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	// each pooled connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d missing up or down SQL", m.Version)
			}
			if m.Name == "" {
				t.Errorf("migration version %d has no name", m.Version)
			}
		}
	})

	t.Run("parseMigrationName", func(t *testing.T) {
		tc := []struct {
			file      string
			version   int
			name      string
			direction string
			ok        bool
		}{
			{"0001_create_cookies_up.sql", 1, "create_cookies", "up", true},
			{"0002_create_notes_down.sql", 2, "create_notes", "down", true},
			{"0003_sideways.sql", 0, "", "", false},
			{"notes_up.sql", 0, "", "", false},
		}
		for _, tt := range tc {
			v, n, d, ok := parseMigrationName(tt.file)
			if v != tt.version || n != tt.name || d != tt.direction || ok != tt.ok {
				t.Errorf("parseMigrationName(%q) = (%d, %q, %q, %v)", tt.file, v, n, d, ok)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db := newTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		for _, table := range []string{"cookies", "notes"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var newCount int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount); err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount != count-1 {
			t.Errorf("expected %d migrations after rollback, got %d", count-1, newCount)
		}

		if _, err := db.Exec("SELECT 1 FROM notes LIMIT 1"); err == nil {
			t.Error("notes table should be dropped by rollback")
		}
	})

	t.Run("Rollback With Nothing Applied", func(t *testing.T) {
		db := newTestDB(t)
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error rolling back an empty database")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db := newTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})

	t.Run("Migrations Status", func(t *testing.T) {
		db := newTestDB(t)

		statuses, err := Migrations(db)
		if err != nil {
			t.Fatalf("failed to list migrations: %v", err)
		}
		for _, s := range statuses {
			if s.Applied {
				t.Errorf("migration %d should not be applied yet", s.Version)
			}
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		statuses, err = Migrations(db)
		if err != nil {
			t.Fatalf("failed to list migrations: %v", err)
		}
		for _, s := range statuses {
			if !s.Applied {
				t.Errorf("migration %d should be applied", s.Version)
			}
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := `-- leading comment
CREATE TABLE a (id INTEGER); -- trailing
CREATE INDEX idx ON a(id);

`
	stmts := splitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
}
