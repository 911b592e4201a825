package database

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
)

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	db, err := Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newGormLogger(&buf)})

	var sub models.Subscription
	err = quiet.Where("name = ?", "SUB-ghost").First(&sub).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())

	err = quiet.Table("missing_table").Find(&[]map[string]any{}).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "mysql"})
	assert.EqualError(t, err, `unsupported DB_DRIVER "mysql"`)
}
