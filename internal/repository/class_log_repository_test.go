package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/models"
)

func newClassLogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func classLogRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "log_date", "course_id", "unit_id", "hours", "session_type", "status", "notes", "created_at"})
}

func TestClassLogRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newClassLogRepoMock(t)
	defer cleanup()
	repo := NewClassLogRepository(db)

	rows := classLogRows().
		AddRow("log-1", "2025-12-15", "course-1", "ut-1", 2, "Teórica", "Impartida", "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_logs WHERE 1=1 AND log_date = $1 ORDER BY log_date ASC, created_at ASC")).
		WithArgs("2025-12-15").
		WillReturnRows(rows)

	logs, err := repo.List(context.Background(), models.ClassLogFilter{Date: "2025-12-15"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2025-12-15", logs[0].Date)
	assert.Equal(t, models.SessionTheory, logs[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassLogRepositoryListStacksFilters(t *testing.T) {
	db, mock, cleanup := newClassLogRepoMock(t)
	defer cleanup()
	repo := NewClassLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("course_id = $1 AND log_date >= $2 AND log_date <= $3")).
		WithArgs("course-1", "2025-09-01", "2026-06-30").
		WillReturnRows(classLogRows())

	_, err := repo.List(context.Background(), models.ClassLogFilter{
		CourseID: "course-1",
		FromDate: "2025-09-01",
		ToDate:   "2026-06-30",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassLogRepositoryCreateBatch(t *testing.T) {
	db, mock, cleanup := newClassLogRepoMock(t)
	defer cleanup()
	repo := NewClassLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_logs")).
		WithArgs(sqlmock.AnyArg(), "2025-12-15", "course-1", "ut-1", 1, "Teórica", "Impartida", "(Parte Teórica) repaso", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_logs")).
		WithArgs(sqlmock.AnyArg(), "2025-12-15", "course-1", "ut-1", 2, "Práctica", "Impartida", "(Parte Práctica) repaso", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	logs := []models.ClassLog{
		{Date: "2025-12-15", CourseID: "course-1", UnitID: "ut-1", Hours: 1, Type: models.SessionTheory, Status: models.AttendanceDelivered, Notes: "(Parte Teórica) repaso"},
		{Date: "2025-12-15", CourseID: "course-1", UnitID: "ut-1", Hours: 2, Type: models.SessionPractice, Status: models.AttendanceDelivered, Notes: "(Parte Práctica) repaso"},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), logs))
	assert.NotEmpty(t, logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassLogRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newClassLogRepoMock(t)
	defer cleanup()
	repo := NewClassLogRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_logs WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassLogRepositoryDeleteByCourse(t *testing.T) {
	db, mock, cleanup := newClassLogRepoMock(t)
	defer cleanup()
	repo := NewClassLogRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_logs WHERE course_id = $1")).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.DeleteByCourse(context.Background(), "course-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
