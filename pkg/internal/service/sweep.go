package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	nlog "github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/metrics"
	"github.com/yeisme/goatdesk/pkg/queue"
	"github.com/yeisme/goatdesk/pkg/tracing"
)

// SweepOptions 清理选项.
type SweepOptions struct {
	DryRun  bool
	Trigger string // http / cron / cli
}

// SweepService 删除未被任何记录引用的图片文件.
type SweepService struct {
	base
	goats  *GoatService
	videos *VideoService
	now    func() time.Time
}

// NewSweepService 从 context 获取依赖实例.
func NewSweepService(c context.Context) *SweepService {
	b := newBase(c)

	return &SweepService{base: b, goats: &GoatService{base: b}, videos: &VideoService{base: b}, now: time.Now}
}

// Pattern 返回受管文件名的匹配规则，未配置时由图片文件名前缀推导.
func Pattern() (*regexp.Regexp, error) {
	cfg := configs.GetConfig()
	if cfg.Sweep.Pattern != "" {
		return regexp.Compile(cfg.Sweep.Pattern)
	}

	return regexp.Compile(`(?i)^` + regexp.QuoteMeta(cfg.Media.Image.NamePrefix) + `.*\.(jpg|jpeg|png|webp)$`)
}

// Run 执行一次清理.
//
// 只有匹配文件名规则的文件才是候选；候选的定位符不在任何记录的引用集合中即为孤儿.
// 单个文件删除失败记录日志后跳过. 运行期间阻塞所有记录变更.
func (s *SweepService) Run(ctx context.Context, opts SweepOptions) (*types.SweepResult, error) {
	ctx, span := tracing.StartSpan(ctx, "SweepService.Run")
	defer span.End()

	l := nlog.Component("sweep").With().Str("trigger", opts.Trigger).Bool("dry_run", opts.DryRun).Logger()

	res, err := s.run(ctx, opts)

	mode := "apply"
	if opts.DryRun {
		mode = "dry_run"
	}

	if err != nil {
		metrics.SweepRuns.WithLabelValues(mode, "error").Inc()
		l.Error().Err(err).Msg("sweep failed")

		return res, err
	}

	metrics.SweepRuns.WithLabelValues(mode, "ok").Inc()
	metrics.SweepLastOrphans.Set(float64(len(res.OrphanedFiles)))
	span.SetAttributes(
		attribute.Int("sweep.total", res.TotalFiles),
		attribute.Int("sweep.orphans", len(res.OrphanedFiles)),
		attribute.Int("sweep.deleted", res.DeletedFiles),
	)

	emit(ctx, s.mqClient, configs.GetConfig().Events.Sweep.Completed, queue.TopicSweepCompleted, queue.PublishSweepCompleted,
		queue.SweepCompletedPayload{
			TotalFiles:    res.TotalFiles,
			OrphanedFiles: len(res.OrphanedFiles),
			DeletedFiles:  res.DeletedFiles,
			FailedFiles:   res.FailedFiles,
			DryRun:        res.DryRun,
			Trigger:       opts.Trigger,
			Orphans:       res.OrphanedFiles,
		})

	l.Info().Int("total", res.TotalFiles).Int("orphans", len(res.OrphanedFiles)).
		Int("deleted", res.DeletedFiles).Int("failed", res.FailedFiles).Msg(res.Message)

	return res, nil
}

func (s *SweepService) run(ctx context.Context, opts SweepOptions) (*types.SweepResult, error) {
	pattern, err := Pattern()
	if err != nil {
		return nil, fmt.Errorf("compile sweep pattern: %w", err)
	}

	unlock := lockSweep()
	defer unlock()

	res := &types.SweepResult{
		DryRun:           opts.DryRun,
		OrphanedFiles:    []string{},
		DeletedFilenames: []string{},
	}

	files, err := s.media.List(ctx, mediaConfig().Image.Dir)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	candidates := files[:0:0]
	for _, f := range files {
		if pattern.MatchString(f.Name) {
			candidates = append(candidates, f)
		}
	}

	res.TotalFiles = len(candidates)
	if len(candidates) == 0 {
		res.Message = "No image files found to clean up"
		return res, nil
	}

	referenced, err := s.goats.ReferencedLocators(ctx)
	if err != nil {
		return nil, err
	}

	thumbs, err := s.videos.ReferencedLocators(ctx)
	if err != nil {
		return nil, err
	}

	for loc := range thumbs {
		referenced[loc] = struct{}{}
	}

	minAge := configs.GetConfig().Sweep.MinAge
	now := s.now()

	for _, f := range candidates {
		if _, ok := referenced[f.Locator]; ok {
			continue
		}

		if minAge > 0 && !f.ModTime.IsZero() && now.Sub(f.ModTime) < minAge {
			res.SkippedRecent++
			continue
		}

		res.OrphanedFiles = append(res.OrphanedFiles, f.Name)

		if opts.DryRun {
			continue
		}

		// 已删除的数量随错误一并返回
		if err := ctx.Err(); err != nil {
			res.Message = fmt.Sprintf("Cleanup interrupted. Deleted %d orphaned files.", res.DeletedFiles)
			metrics.MediaDeleted.WithLabelValues("sweep").Add(float64(res.DeletedFiles))

			return res, err
		}

		if s.media.Delete(ctx, f.Locator) {
			res.DeletedFiles++
			res.DeletedFilenames = append(res.DeletedFilenames, f.Name)
		} else {
			res.FailedFiles++
		}
	}

	if opts.DryRun {
		res.Message = fmt.Sprintf("Dry run completed. Found %d orphaned files.", len(res.OrphanedFiles))
	} else {
		res.Message = fmt.Sprintf("Cleanup completed. Deleted %d orphaned files.", res.DeletedFiles)
		metrics.MediaDeleted.WithLabelValues("sweep").Add(float64(res.DeletedFiles))
	}

	return res, nil
}
