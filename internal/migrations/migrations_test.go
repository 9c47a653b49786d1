package migrations

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestNewRunnerRejectsUnknownDialect(t *testing.T) {
	if _, err := NewRunner("oracle"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestLoadMigrationsSortsAndPairsUpDown(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/sqlite/000002_two.up.sql":   {Data: []byte("SELECT 2;")},
		"sql/sqlite/000002_two.down.sql": {Data: []byte("SELECT -2;")},
		"sql/sqlite/000001_one.up.sql":   {Data: []byte("SELECT 1;")},
		"sql/sqlite/000001_one.down.sql": {Data: []byte("SELECT -1;")},
	}

	items, err := loadMigrations(fsys, "sqlite")
	if err != nil {
		t.Fatalf("loadMigrations() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d", len(items))
	}
	if items[0].Version != 1 || items[1].Version != 2 {
		t.Fatalf("unexpected migration order: %+v", items)
	}
}

func TestLoadMigrationsErrorsWhenDownMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/sqlite/000001_one.up.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := loadMigrations(fsys, "sqlite")
	if err == nil {
		t.Fatal("expected error for missing down migration")
	}
	if !strings.Contains(err.Error(), "missing down SQL") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmbeddedMigrationsLoadForBothDialects(t *testing.T) {
	for _, dialect := range []string{"postgres", "sqlite"} {
		items, err := loadMigrations(embeddedFS, dialect)
		if err != nil {
			t.Fatalf("loadMigrations(%q) error = %v", dialect, err)
		}
		if len(items) == 0 {
			t.Fatalf("no embedded migrations for %q", dialect)
		}
		if !strings.Contains(items[0].UpSQL, "query_card") {
			t.Fatalf("first %s migration does not create query_card: %q", dialect, items[0].UpSQL)
		}
	}
}

func TestUpAppliesPendingMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + migrationTable).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT version FROM ` + migrationTable + ` ORDER BY version ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS query_card").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO ` + migrationTable + ` (version) VALUES ($1)`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner, err := NewRunner("postgres")
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	applied, err := runner.Up(context.Background(), db, 0)
	if err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied = %d", applied)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestUpSkipsAlreadyAppliedMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + migrationTable).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT version FROM ` + migrationTable + ` ORDER BY version ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(1)))

	runner, err := NewRunner("postgres")
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	applied, err := runner.Up(context.Background(), db, 0)
	if err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if applied != 0 {
		t.Fatalf("applied = %d", applied)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
