package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/jobs"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
	"github.com/yeisme/goatdesk/pkg/internal/storage/db"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	"github.com/yeisme/goatdesk/pkg/scheduler"
)

func newManager(t *testing.T) (*storage.Manager, afero.Fs) {
	t.Helper()

	configs.SetConfig(configs.Default())

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	client := db.Wrap(gdb)
	require.NoError(t, client.Migrate(context.Background(), model.All()...))

	fsys := afero.NewMemMapFs()

	return storage.NewManager(client, media.NewLocalStoreFs(fsys, "/uploads/"), nil, nil), fsys
}

func newScheduler(t *testing.T) *scheduler.Scheduler {
	t.Helper()

	s, err := scheduler.NewScheduler()
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	return s
}

func TestRegisterCronJobs_Disabled(t *testing.T) {
	mgr, _ := newManager(t)
	s := newScheduler(t)

	require.NoError(t, jobs.RegisterCronJobs(s, mgr, configs.SweepConfig{ScheduleEnabled: false, Cron: "0 30 3 * * *"}))
	assert.Empty(t, s.GetJobInfos())

	assert.Error(t, jobs.RegisterCronJobs(nil, mgr, configs.SweepConfig{}))
	assert.Error(t, jobs.RegisterCronJobs(s, nil, configs.SweepConfig{}))
}

func TestRegisterCronJobs_SweepRuns(t *testing.T) {
	mgr, fsys := newManager(t)
	s := newScheduler(t)

	require.NoError(t, afero.WriteFile(fsys, "/goat-orphan.jpg", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/notes.txt", []byte("x"), 0o644))

	cfg := configs.SweepConfig{ScheduleEnabled: true, Cron: "0 0 3 1 1 *"}
	require.NoError(t, jobs.RegisterCronJobs(s, mgr, cfg))

	info, err := s.GetJobInfoByName(jobs.JobMediaOrphanSweep)
	require.NoError(t, err)
	assert.Equal(t, cfg.Cron, info.CronExpr)

	require.NoError(t, s.RunNow(jobs.JobMediaOrphanSweep))

	require.Eventually(t, func() bool {
		ok, _ := afero.Exists(fsys, "/goat-orphan.jpg")
		return !ok
	}, 3*time.Second, 20*time.Millisecond)

	ok, _ := afero.Exists(fsys, "/notes.txt")
	assert.True(t, ok)
}
