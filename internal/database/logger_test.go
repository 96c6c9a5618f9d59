package database

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLoggedDB(t *testing.T, buf *bytes.Buffer, level logger.LogLevel) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gormLogger := &CustomGormLogger{
		logger: slog.New(slog.NewJSONHandler(buf, nil)),
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormLogger})
	require.NoError(t, err)
	return db, mock
}

func TestCustomGormLogger_LogsQueriesAtInfo(t *testing.T) {
	var buf bytes.Buffer
	db, mock := newLoggedDB(t, &buf, logger.Info)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Contains(t, buf.String(), "GORM query")
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestCustomGormLogger_SilentAtWarnForFastQueries(t *testing.T) {
	var buf bytes.Buffer
	db, mock := newLoggedDB(t, &buf, logger.Warn)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Empty(t, buf.String(), "fast successful queries stay quiet at warn level")
}

func TestCustomGormLogger_IgnoresRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	gormLogger := &CustomGormLogger{
		logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		Config: logger.Config{LogLevel: logger.Error, IgnoreRecordNotFoundError: true},
	}

	gormLogger.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM posts WHERE id = 404", 0
	}, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}
