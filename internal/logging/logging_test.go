package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), "input %q", in)
	}
}

func TestPGHandler_PersistsErrorsOnly(t *testing.T) {
	db := newTestDB(t)
	h := logging.NewPGHandler(db)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Error("Create Subscription API Error",
		"action", "Create Subscription API Error",
		"method", "POST",
		"path", "/api/subscriptions",
		"error", errors.New("boom"),
		"party", "Acme",
	)
	logger.WithGroup("db").Error("query failed", "table", "items")
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Order("message ASC").Find(&logs).Error)
	require.Len(t, logs, 2)

	entry := logs[0]
	assert.Equal(t, "Create Subscription API Error", entry.Message)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "Create Subscription API Error", entry.Action)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/subscriptions", entry.Path)
	assert.Equal(t, "boom", entry.Error)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, map[string]any{"party": "Acme"}, extra)

	grouped := logs[1]
	assert.Equal(t, "query failed", grouped.Message)
	assert.Equal(t, "req-1", grouped.RequestID)
	var groupedExtra map[string]any
	require.NoError(t, json.Unmarshal(grouped.Extra, &groupedExtra))
	assert.Equal(t, map[string]any{"db.table": "items"}, groupedExtra)
}

func TestPGHandler_StopIsIdempotent(t *testing.T) {
	h := logging.NewPGHandler(newTestDB(t))
	h.Stop()
	h.Stop()
}

func TestPGHandler_WritesDirectlyAfterStop(t *testing.T) {
	db := newTestDB(t)
	h := logging.NewPGHandler(db)
	h.Stop()

	logger := slog.New(h)
	for i := 0; i < 60; i++ {
		logger.Error("late failure", "attempt", i)
	}

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Where("message = ?", "late failure").Count(&count).Error)
	assert.EqualValues(t, 60, count)
}

func TestMultiHandler_FansOut(t *testing.T) {
	var infoBuf, errorBuf bytes.Buffer
	h := logging.NewMultiHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(h).With("service", "subscriptions")
	logger.Info("hello")
	logger.Error("failure")

	assert.Contains(t, infoBuf.String(), `"msg":"hello"`)
	assert.Contains(t, infoBuf.String(), `"msg":"failure"`)
	assert.NotContains(t, errorBuf.String(), `"msg":"hello"`)
	assert.Contains(t, errorBuf.String(), `"msg":"failure"`)
	assert.Contains(t, errorBuf.String(), `"service":"subscriptions"`)
}

func TestPurgeSystemLogs(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	logs := []models.SystemLog{
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -31), Level: "ERROR", Message: "older than retention"},
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -2), Level: "ERROR", Message: "recent"},
	}
	require.NoError(t, db.Create(&logs).Error)

	deleted, err := logging.PurgeSystemLogs(db, 30, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}
