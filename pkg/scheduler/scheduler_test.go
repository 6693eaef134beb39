package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/scheduler"
)

// yearly 只在每年一月一日触发，测试中只通过 RunNow 执行.
const yearly = "0 0 1 1 *"

func newScheduler(t *testing.T) *scheduler.Scheduler {
	t.Helper()

	s, err := scheduler.NewScheduler()
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	return s
}

func TestAddCron(t *testing.T) {
	s := newScheduler(t)

	noop := func(context.Context) error { return nil }

	require.NoError(t, s.AddCron(context.Background(), "b.job", yearly, noop))
	require.NoError(t, s.AddCron(context.Background(), "a.job", "0 30 3 * * *", noop))

	assert.Error(t, s.AddCron(context.Background(), "a.job", yearly, noop), "duplicate name")
	assert.Error(t, s.AddCron(context.Background(), "bad.job", "not a cron", noop))

	infos := s.GetJobInfos()
	require.Len(t, infos, 2)
	assert.Equal(t, "a.job", infos[0].Name)
	assert.Equal(t, scheduler.StatusScheduled, infos[0].Status)
	assert.False(t, infos[0].NextRun.IsZero())

	require.NoError(t, s.RemoveJobByName("b.job"))
	assert.Len(t, s.GetJobInfos(), 1)

	_, err := s.GetJobInfoByName("b.job")
	assert.Error(t, err)
}

func TestRunNow(t *testing.T) {
	s := newScheduler(t)

	type ctxKey struct{}

	ran := make(chan any, 1)
	ctx := context.WithValue(context.Background(), ctxKey{}, "injected")

	require.NoError(t, s.AddCron(ctx, "sweep", yearly, func(ctx context.Context) error {
		ran <- ctx.Value(ctxKey{})
		return nil
	}))

	require.NoError(t, s.RunNow("sweep"))

	select {
	case v := <-ran:
		assert.Equal(t, "injected", v)
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	require.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("sweep")
		return err == nil && !info.LastSuccess.IsZero()
	}, 3*time.Second, 20*time.Millisecond)

	assert.Error(t, s.RunNow("missing"))
}

func TestRunNow_RecordsError(t *testing.T) {
	s := newScheduler(t)

	require.NoError(t, s.AddCron(context.Background(), "failing", yearly, func(context.Context) error {
		return errors.New("disk unavailable")
	}))

	require.NoError(t, s.RunNow("failing"))

	require.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("failing")
		return err == nil && info.Status == scheduler.StatusError && info.Error == "disk unavailable"
	}, 3*time.Second, 20*time.Millisecond)
}
