package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestSumHoursForDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT SUM\(hours\) FROM "assignments" WHERE resource_id = \$1 AND date = \$2`).
		WithArgs("res-1", day).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(12.5))

	sum, err := repo.SumHoursForDay("res-1", day, "")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumHoursForDayNormalizesTime(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	// The query must compare against midnight, whatever time of day came in
	midnight := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT SUM\(hours\) FROM "assignments"`).
		WithArgs("res-1", midnight).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

	afternoon := time.Date(2026, 6, 10, 16, 45, 0, 0, time.UTC)
	sum, err := repo.SumHoursForDay("res-1", afternoon, "")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumHoursForMonthSpansBothModes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT SUM\(hours\) FROM "assignments" WHERE resource_id = \$1 AND \(\(month = \$2 AND year = \$3\) OR \(date >= \$4 AND date < \$5\)\)`).
		WithArgs("res-1", 6, 2026, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100.0))

	sum, err := repo.SumHoursForMonth("res-1", 6, 2026, "")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumHoursForMonthExcludesRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT SUM\(hours\) FROM "assignments" .* AND id <> \$6`).
		WithArgs("res-1", 6, 2026, from, to, "asg-42").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(60.0))

	sum, err := repo.SumHoursForMonth("res-1", 6, 2026, "asg-42")
	assert.NoError(t, err)
	assert.Equal(t, 60.0, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByProjectReportsCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "assignments" WHERE project_id = \$1`).
		WithArgs("prj-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.DeleteByProject("prj-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
