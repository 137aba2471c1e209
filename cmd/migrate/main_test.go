package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	stepsErr   error
	steps      []int
	version    uint
	versionErr error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return f.stepsErr
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, f.versionErr }

func TestApplyMigration(t *testing.T) {
	msg, err := applyMigration(&fakeMigrator{version: 2}, "up")
	require.NoError(t, err)
	assert.Equal(t, "Migrations up applied successfully (version 2, dirty false).", msg)

	down := &fakeMigrator{versionErr: migrate.ErrNilVersion}
	msg, err = applyMigration(down, "down")
	require.NoError(t, err)
	assert.Equal(t, []int{-1}, down.steps)
	assert.Contains(t, msg, "Migrations down applied successfully")

	msg, err = applyMigration(&fakeMigrator{upErr: migrate.ErrNoChange}, "up")
	require.NoError(t, err)
	assert.Equal(t, "No migrations to apply.", msg)
}

func TestApplyMigration_Errors(t *testing.T) {
	boom := errors.New("relation stocks already exists")

	_, err := applyMigration(&fakeMigrator{upErr: boom}, "up")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, err = applyMigration(&fakeMigrator{stepsErr: boom}, "down")
	assert.ErrorIs(t, err, boom)

	_, err = applyMigration(&fakeMigrator{versionErr: boom}, "up")
	assert.ErrorIs(t, err, boom)

	_, err = applyMigration(&fakeMigrator{}, "sideways")
	assert.Error(t, err)
}

func TestRunMigrations_MissingSource(t *testing.T) {
	configPath = "does-not-exist.yaml"
	migrationsPath = t.TempDir() + "/missing"
	t.Cleanup(func() {
		configPath = ""
		migrationsPath = ""
	})

	assert.Error(t, runMigrations("up"))
}
