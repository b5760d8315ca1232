package outreach

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreRecord(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO courtesy_outcomes").WithArgs(
		sqlmock.AnyArg(),
		"run-1",
		"Alice",
		"email",
		"simulated",
		"",
		"gemini-2.5-flash",
		"Hello",
	).WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	store := NewStore(db)
	rec, err := store.Record(context.Background(), Record{
		RunID:    "run-1",
		Contact:  "Alice",
		Platform: "email",
		Status:   "simulated",
		Model:    "gemini-2.5-flash",
		Subject:  "Hello",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated id")
	}
	if !rec.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected created_at %v", rec.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStoreCountForRun(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	store := NewStore(db)
	count, err := store.CountForRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5, got %d", count)
	}
}

func TestStoreNilDB(t *testing.T) {
	var store *SQLStore
	if _, err := store.Record(context.Background(), Record{}); err == nil {
		t.Fatal("expected error from nil store")
	}
}
