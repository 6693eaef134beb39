package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	nlog "github.com/yeisme/goatdesk/pkg/log"
)

// StatsService 仪表盘统计.
type StatsService struct{ base }

// NewStatsService 创建统计服务.
func NewStatsService(c context.Context) *StatsService { return &StatsService{newBase(c)} }

// 通用聚合结果行。
type aggRow struct {
	Key string `gorm:"column:k"`
	Cnt int64  `gorm:"column:cnt"`
}

// Summary 汇总商品、视频、留言数量与媒体文件占用.
func (s *StatsService) Summary(ctx context.Context) (*types.DashboardStats, error) {
	dbx := s.dbClient.WithContext(ctx)

	// 一次聚合得到总数与在售数，SQLite/MySQL/Postgres 通用
	var goats struct {
		Total     int64 `gorm:"column:total"`
		Available int64 `gorm:"column:available"`
	}

	if err := dbx.Model(&model.Goat{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END),0) AS available").
		Scan(&goats).Error; err != nil {
		return nil, fmt.Errorf("count goats: %w", err)
	}

	var videos struct {
		Total int64 `gorm:"column:total"`
		Likes int64 `gorm:"column:likes"`
	}

	if err := dbx.Model(&model.Video{}).
		Select("COUNT(*) AS total, COALESCE(SUM(likes),0) AS likes").
		Scan(&videos).Error; err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}

	var messages int64
	if err := dbx.Model(&model.ContactMessage{}).Count(&messages).Error; err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	var rows []aggRow
	if err := dbx.Model(&model.Goat{}).
		Select("breed AS k, COUNT(*) AS cnt").
		Group("breed").
		Order("cnt DESC, k ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("group breeds: %w", err)
	}

	out := &types.DashboardStats{
		TotalGoats:     int(goats.Total),
		AvailableGoats: int(goats.Available),
		TotalVideos:    int(videos.Total),
		TotalLikes:     videos.Likes,
		TotalMessages:  int(messages),
		Breeds:         make([]types.StatsBreedItem, 0, len(rows)),
	}

	for _, r := range rows {
		out.Breeds = append(out.Breeds, types.StatsBreedItem{Breed: r.Key, Count: int(r.Cnt)})
	}

	// 图片与视频目录并行扫描，单个目录失败时返回零值
	var g errgroup.Group

	g.Go(func() error {
		out.Images = s.usage(ctx, mediaConfig().Image.Dir)
		return nil
	})
	g.Go(func() error {
		out.Videos = s.usage(ctx, mediaConfig().Video.Dir)
		return nil
	})

	_ = g.Wait()

	return out, nil
}

// usage 统计命名空间子目录的文件数与大小，后端不可用时返回零值.
func (s *StatsService) usage(ctx context.Context, dir string) types.StatsMediaUsage {
	files, err := s.media.List(ctx, dir)
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("dir", dir).Msg("list media for stats failed")
		return types.StatsMediaUsage{}
	}

	u := types.StatsMediaUsage{Files: len(files)}
	for _, f := range files {
		u.Size += f.Size
	}

	return u
}
