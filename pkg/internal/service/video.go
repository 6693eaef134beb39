package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/locator"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	nlog "github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/metrics"
	"github.com/yeisme/goatdesk/pkg/queue"
	"github.com/yeisme/goatdesk/pkg/rule"
)

const recordKindVideo = "video"

// VideoService 管理短视频记录，视频与缩略图文件随记录变更回收.
type VideoService struct {
	base
}

// NewVideoService 从 context 获取依赖实例.
func NewVideoService(c context.Context) *VideoService {
	return &VideoService{base: newBase(c)}
}

// List 按创建时间倒序返回全部视频.
func (s *VideoService) List(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := s.dbClient.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return videos, nil
}

// Get 获取单个视频.
func (s *VideoService) Get(ctx context.Context, id uint) (*model.Video, error) {
	return s.load(s.dbClient.WithContext(ctx), id)
}

// Create 新建视频记录.
func (s *VideoService) Create(ctx context.Context, req *types.VideoRequest) (*model.Video, error) {
	var v model.Video
	if err := applyVideo(req, &v); err != nil {
		return nil, err
	}

	unlock := lockCreate()
	defer unlock()

	if err := s.dbClient.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	nlog.Logger().Info().Uint("id", v.ID).Msg("video created")

	return &v, nil
}

// Update 更新视频记录，被替换掉的视频或缩略图文件在提交后删除.
func (s *VideoService) Update(ctx context.Context, id uint, req *types.VideoRequest) (*model.Video, error) {
	var probe model.Video
	if err := applyVideo(req, &probe); err != nil {
		return nil, err
	}

	unlock := lockRecord(recordKindVideo, id)
	defer unlock()

	var (
		v             *model.Video
		before, after []string
	)

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.load(tx, id)
		if err != nil {
			return err
		}

		before = existing.Locators(s.prefix())

		if err := applyVideo(req, existing); err != nil {
			return err
		}

		after = existing.Locators(s.prefix())

		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("update video %d: %w", id, err)
		}

		v = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed := locator.Diff(before, after); len(removed) > 0 {
		deleted := s.media.DeleteMany(ctx, removed)
		metrics.MediaDeleted.WithLabelValues("video.updated").Add(float64(deleted))

		emit(ctx, s.mqClient, configs.GetConfig().Events.Media.Deleted, queue.TopicMediaDeleted, queue.PublishMediaDeleted,
			queue.MediaDeletedPayload{Locators: removed, Reason: "video.updated", OwnerID: id})
	}

	return v, nil
}

// Delete 删除视频记录及其文件，返回实际删除的文件数.
func (s *VideoService) Delete(ctx context.Context, id uint) (int, error) {
	unlock := lockRecord(recordKindVideo, id)
	defer unlock()

	dbx := s.dbClient.WithContext(ctx)

	v, err := s.load(dbx, id)
	if err != nil {
		return 0, err
	}

	set := v.Locators(s.prefix())

	res := dbx.Delete(&model.Video{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete video %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return 0, ErrVideoNotFound
	}

	deleted := s.media.DeleteMany(ctx, set)
	metrics.MediaDeleted.WithLabelValues("video.deleted").Add(float64(deleted))

	emit(ctx, s.mqClient, configs.GetConfig().Events.Video.Deleted, queue.TopicVideoDeleted, queue.PublishVideoDeleted,
		queue.VideoDeletedPayload{ID: id, Title: v.Title, Locators: set, DeletedFiles: deleted})

	nlog.Logger().Info().Uint("id", id).Int("deleted_files", deleted).Msg("video deleted")

	return deleted, nil
}

// Like 点赞数加一，返回更新后的记录.
func (s *VideoService) Like(ctx context.Context, id uint) (*model.Video, error) {
	dbx := s.dbClient.WithContext(ctx)

	res := dbx.Model(&model.Video{}).Where("id = ?", id).UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("like video %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, ErrVideoNotFound
	}

	return s.load(dbx, id)
}

// ReferencedLocators 返回全部视频引用的定位符集合，缩略图可能位于图片目录.
func (s *VideoService) ReferencedLocators(ctx context.Context) (map[string]struct{}, error) {
	var videos []model.Video
	if err := s.dbClient.WithContext(ctx).Select("id", "video_url", "thumbnail_url").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}

	groups := make([][]string, 0, len(videos))
	for i := range videos {
		groups = append(groups, videos[i].Locators(s.prefix()))
	}

	return locator.Union(groups...), nil
}

func (s *VideoService) load(dbx *gorm.DB, id uint) (*model.Video, error) {
	var v model.Video
	if err := dbx.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}

		return nil, fmt.Errorf("load video %d: %w", id, err)
	}

	return &v, nil
}

func applyVideo(req *types.VideoRequest, v *model.Video) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	req.Normalize()

	if err := rule.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, rule.Message(err))
	}

	v.Title = req.Title
	v.Description = req.Description
	v.VideoURL = req.VideoURL
	v.ThumbnailURL = req.ThumbnailURL

	v.IsActive = true
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	return nil
}
