package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"kitchen_lab/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

const insertNotificationSQL = `
		INSERT INTO notifications (id, occurred_at, severity, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMockRepo(t *testing.T) (*NotificationSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewNotificationSQLite(db), mock
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertNotificationSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "success", "Added 150g Chicken breast", `{"food":"Chicken breast"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.Notification{
		Severity: " Success ",
		Message:  "Added 150g Chicken breast",
		Metadata: map[string]any{"food": "Chicken breast"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_KeepsGivenIDAndTime(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	at := time.Date(2025, 3, 1, 9, 30, 0, 5, time.FixedZone("CET", 3600))
	mock.ExpectExec(regexp.QuoteMeta(insertNotificationSQL)).
		WithArgs("n-42", "2025-03-01T08:30:00.000000005Z", "info", "Scale zeroed", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.Notification{
		ID:         "n-42",
		OccurredAt: at,
		Severity:   "info",
		Message:    "Scale zeroed",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO notifications").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.Notification{Severity: "error", Message: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	js, _ := json.Marshal(map[string]any{"muted": true})
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "severity", "message", "meta"}).
		AddRow("1", "2025-01-01T10:00:00.000000000Z", "info", "Timer finished", string(js)).
		AddRow("2", "2025-01-01T11:00:00.000000000Z", "error", "Error: place food on the scale first", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, severity, message, meta FROM notifications ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if !got[1].OccurredAt.Equal(time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got[1].OccurredAt)
	}
	b, _ := json.Marshal(got[0].Metadata)
	if string(b) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", b, js)
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := `SELECT id, occurred_at, severity, message, meta FROM notifications WHERE occurred_at >= ? AND occurred_at <= ? AND severity = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "severity", "message", "meta"}).
		AddRow("3", "2025-01-01T11:30:00.000000000Z", "error", "Error: place flour on the scale first", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-01-01T11:00:00.000000000Z", "2025-01-01T12:00:00.000000000Z", "error").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " ERROR ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "severity", "message", "meta"}).
		AddRow("x", "yesterday", "info", "msg", nil)
	mock.ExpectQuery("SELECT id, occurred_at").WillReturnRows(rows)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, occurred_at").WillReturnError(errors.New("locked"))

	_, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected query error, got %v", err)
	}
}
