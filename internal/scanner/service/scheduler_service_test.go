package service

import (
	"context"
	"testing"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulerService_InvalidCron(t *testing.T) {
	cfg := testConfig(1)
	cfg.Schedule.Cron = "every night"

	_, err := NewSchedulerService(cfg, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestSchedulerService_Next(t *testing.T) {
	cfg := testConfig(1)
	cfg.Schedule.Cron = "30 18 * * 1-5"

	scheduler, err := NewSchedulerService(cfg, nil, logger.NewNop())
	require.NoError(t, err)

	friday := time.Date(2024, 6, 14, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 17, 18, 30, 0, 0, time.UTC), scheduler.Next(friday))
}

func TestSchedulerService_ProcessScheduledRun(t *testing.T) {
	bars, universe := mixedUniverse()
	cfg := testConfig(2)
	cfg.Schedule.Profile = "default"
	svc := newTestService(cfg, bars, universe, nil)
	defer svc.Close()

	scheduler, err := NewSchedulerService(cfg, svc, logger.NewNop())
	require.NoError(t, err)

	scheduler.ProcessScheduledRun(context.Background())

	require.Eventually(t, func() bool {
		latest := svc.Latest()
		return latest != nil && latest.Status == entity.RunStatusCompleted
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, svc.Latest().Qualified)
}

func TestSchedulerService_StartStop(t *testing.T) {
	bars, universe := mixedUniverse()
	cfg := testConfig(1)
	cfg.App.TimeZone = "UTC"
	svc := newTestService(cfg, bars, universe, nil)
	defer svc.Close()

	scheduler, err := NewSchedulerService(cfg, svc, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, scheduler.Start(context.Background()))
	scheduler.Stop()

	cfg.App.TimeZone = "Mars/Olympus"
	scheduler, err = NewSchedulerService(cfg, svc, logger.NewNop())
	require.NoError(t, err)
	assert.Error(t, scheduler.Start(context.Background()))
}
