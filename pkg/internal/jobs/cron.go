// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/goatdesk/pkg/configs"
	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
	"github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - sweep.schedule_enabled 打开时按 sweep.cron 执行孤儿图片清理
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cfg configs.SweepConfig) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	if !cfg.ScheduleEnabled {
		l := log.Component("jobs")
		l.Info().Msg("orphan sweep schedule disabled")
		return nil
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	return sched.AddCron(baseCtx, JobMediaOrphanSweep, cfg.Cron, runOrphanSweep)
}

// runOrphanSweep 清理未被任何商品引用的图片.
func runOrphanSweep(ctx context.Context) error {
	l := log.Logger().With().Str("job", JobMediaOrphanSweep).Logger()

	res, err := service.NewSweepService(ctx).Run(ctx, service.SweepOptions{Trigger: TriggerCron})
	if err != nil {
		return fmt.Errorf("orphan sweep: %w", err)
	}

	l.Info().
		Int("deleted", res.DeletedFiles).
		Int("total", res.TotalFiles).
		Int("failed", res.FailedFiles).
		Msg("orphan sweep done")

	return nil
}
