package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/service"
)

func TestLoadHungerDefaultsWhenUnset(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	reading, err := service.LoadHunger(db, testNow)
	require.NoError(t, err)
	assert.False(t, reading.Present)
	assert.Equal(t, 100.0, reading.Stored)
	assert.Equal(t, 100.0, reading.Value)
}

func TestLoadHungerDecays(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	require.NoError(t, service.SaveHunger(db, 60, testNow))

	reading, err := service.LoadHunger(db, testNow.Add(95*time.Minute))
	require.NoError(t, err)
	assert.True(t, reading.Present)
	assert.Equal(t, 60.0, reading.Stored)
	assert.Equal(t, 45.0, reading.Value)
	assert.True(t, reading.UpdatedAt.Equal(testNow))

	reading, err = service.LoadHunger(db, testNow.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 60.0, reading.Value, "clock skew must not decay")

	reading, err = service.LoadHunger(db, testNow.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0.0, reading.Value)
}

func TestSaveHungerClamps(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	require.NoError(t, service.SaveHunger(db, 140, testNow))
	reading, err := service.LoadHunger(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, 100.0, reading.Stored)

	require.NoError(t, service.SaveHunger(db, -3, testNow))
	reading, err = service.LoadHunger(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reading.Stored)
}

func TestLoadHungerRecoversMalformedRows(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO hunger_state(id, value, updated_at) VALUES(1, 'starving', 'noon')`)
	require.NoError(t, err)
	reading, err := service.LoadHunger(db, testNow)
	require.NoError(t, err)
	assert.False(t, reading.Present)
	assert.Equal(t, 100.0, reading.Value)

	_, err = db.Exec(`UPDATE hunger_state SET value = 55 WHERE id = 1`)
	require.NoError(t, err)
	reading, err = service.LoadHunger(db, testNow.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, reading.Present)
	assert.Equal(t, 55.0, reading.Value, "unreadable timestamp skips decay")
}
