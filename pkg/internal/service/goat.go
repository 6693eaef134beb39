package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/locator"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	nlog "github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/metrics"
	"github.com/yeisme/goatdesk/pkg/queue"
	"github.com/yeisme/goatdesk/pkg/rule"
	"github.com/yeisme/goatdesk/pkg/tracing"
)

const (
	defaultHealthStatus = "Healthy"
	recordKindGoat      = "goat"
)

// GoatService 管理商品记录及其引用的图片文件.
//
// 写库成功之后才删除文件；单个文件删除失败不影响记录操作，遗留的孤儿由清理任务回收.
type GoatService struct {
	base
}

// DeleteResult 删除记录的结果.
type DeleteResult struct {
	DeletedFiles    int
	ReferencedFiles int
}

// NewGoatService 从 context 获取依赖实例.
func NewGoatService(c context.Context) *GoatService {
	return &GoatService{base: newBase(c)}
}

// List 按创建时间倒序返回全部记录.
func (s *GoatService) List(ctx context.Context) ([]model.Goat, error) {
	var goats []model.Goat
	if err := s.dbClient.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&goats).Error; err != nil {
		return nil, fmt.Errorf("list goats: %w", err)
	}

	return goats, nil
}

// Get 获取单条记录.
func (s *GoatService) Get(ctx context.Context, id uint) (*model.Goat, error) {
	return s.load(s.dbClient.WithContext(ctx), id)
}

// Create 新建记录，不涉及文件删除.
func (s *GoatService) Create(ctx context.Context, req *types.GoatRequest) (*model.Goat, error) {
	ctx, span := tracing.StartSpan(ctx, "GoatService.Create")
	defer span.End()

	var g model.Goat

	locs, err := apply(req, &g)
	if err != nil {
		return nil, err
	}

	unlock := lockCreate()
	defer unlock()

	if err := s.dbClient.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, fmt.Errorf("create goat: %w", err)
	}

	span.SetAttributes(attribute.Int("goat.id", int(g.ID)), attribute.Int("goat.images", len(locs)))
	metrics.GoatMutations.WithLabelValues("create").Inc()

	emit(ctx, s.mqClient, configs.GetConfig().Events.Goat.Created, queue.TopicGoatCreated, queue.PublishGoatCreated,
		queue.GoatCreatedPayload{Goat: goatRef(&g), Locators: g.Locators(s.prefix())})

	nlog.Logger().Info().Uint("id", g.ID).Int("images", len(locs)).Msg("goat created")

	return &g, nil
}

// Update 替换记录字段与图片集合，提交成功后删除 before − after 中的文件.
func (s *GoatService) Update(ctx context.Context, id uint, req *types.GoatRequest) (*model.Goat, error) {
	ctx, span := tracing.StartSpan(ctx, "GoatService.Update")
	defer span.End()

	span.SetAttributes(attribute.Int("goat.id", int(id)))

	// 先校验请求，不合法时不读库
	var probe model.Goat
	if _, err := apply(req, &probe); err != nil {
		return nil, err
	}

	unlock := lockRecord(recordKindGoat, id)
	defer unlock()

	var (
		g      *model.Goat
		before []string
		after  []string
	)

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.load(tx, id)
		if err != nil {
			return err
		}

		before = existing.Locators(s.prefix())

		if after, err = apply(req, existing); err != nil {
			return err
		}

		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("update goat %d: %w", id, err)
		}

		g = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	removed := locator.Diff(before, after)
	deleted := s.removeFiles(ctx, removed, "goat.updated", id)

	metrics.GoatMutations.WithLabelValues("update").Inc()

	emit(ctx, s.mqClient, configs.GetConfig().Events.Goat.Updated, queue.TopicGoatUpdated, queue.PublishGoatUpdated,
		queue.GoatUpdatedPayload{Goat: goatRef(g), Locators: after, Removed: removed, DeletedFiles: deleted})

	nlog.Logger().Info().Uint("id", id).Int("removed", len(removed)).Int("deleted_files", deleted).Msg("goat updated")

	return g, nil
}

// Delete 删除记录及其引用的全部文件，返回实际删除的文件数.
func (s *GoatService) Delete(ctx context.Context, id uint) (DeleteResult, error) {
	ctx, span := tracing.StartSpan(ctx, "GoatService.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int("goat.id", int(id)))

	unlock := lockRecord(recordKindGoat, id)
	defer unlock()

	dbx := s.dbClient.WithContext(ctx)

	g, err := s.load(dbx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	set := g.Locators(s.prefix())

	res := dbx.Delete(&model.Goat{}, id)
	if res.Error != nil {
		return DeleteResult{}, fmt.Errorf("delete goat %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return DeleteResult{}, ErrGoatNotFound
	}

	deleted := s.removeFiles(ctx, set, "goat.deleted", id)
	result := DeleteResult{DeletedFiles: deleted, ReferencedFiles: len(set)}

	metrics.GoatMutations.WithLabelValues("delete").Inc()

	emit(ctx, s.mqClient, configs.GetConfig().Events.Goat.Deleted, queue.TopicGoatDeleted, queue.PublishGoatDeleted,
		queue.GoatDeletedPayload{Goat: goatRef(g), Locators: set, DeletedFiles: deleted, ReferencedFiles: len(set)})

	nlog.Logger().Info().Uint("id", id).Int("referenced", len(set)).Int("deleted_files", deleted).Msg("goat deleted")

	return result, nil
}

// ReferencedLocators 返回全部记录引用的定位符集合.
func (s *GoatService) ReferencedLocators(ctx context.Context) (map[string]struct{}, error) {
	var goats []model.Goat
	if err := s.dbClient.WithContext(ctx).Select("id", "image_url", "description").Find(&goats).Error; err != nil {
		return nil, fmt.Errorf("load goats: %w", err)
	}

	groups := make([][]string, 0, len(goats))
	for i := range goats {
		groups = append(groups, goats[i].Locators(s.prefix()))
	}

	return locator.Union(groups...), nil
}

func (s *GoatService) load(dbx *gorm.DB, id uint) (*model.Goat, error) {
	var g model.Goat
	if err := dbx.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoatNotFound
		}

		return nil, fmt.Errorf("load goat %d: %w", id, err)
	}

	return &g, nil
}

// removeFiles 删除文件并记录指标与事件，返回确认删除的数量.
func (s *GoatService) removeFiles(ctx context.Context, locators []string, reason string, owner uint) int {
	if len(locators) == 0 {
		return 0
	}

	deleted := s.media.DeleteMany(ctx, locators)
	metrics.MediaDeleted.WithLabelValues(reason).Add(float64(deleted))

	if deleted < len(locators) {
		nlog.Logger().Warn().Uint("owner", owner).Str("reason", reason).
			Int("candidates", len(locators)).Int("deleted", deleted).Msg("some media files were not deleted")
	}

	emit(ctx, s.mqClient, configs.GetConfig().Events.Media.Deleted, queue.TopicMediaDeleted, queue.PublishMediaDeleted,
		queue.MediaDeletedPayload{Locators: locators, Reason: reason, OwnerID: owner})

	return deleted
}

// apply 校验请求并写入模型字段，返回提交的定位符列表.
func apply(req *types.GoatRequest, g *model.Goat) ([]string, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	req.Normalize()

	if err := rule.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, rule.Message(err))
	}

	locs := req.Locators()

	primary, notes, err := locator.Encode(locs, req.Description)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	g.Name = req.Name
	g.Breed = req.Breed
	g.Age = req.Age
	g.Weight = req.Weight
	g.Price = float64(req.Price)
	g.Gender = req.Gender
	g.Color = req.Color
	g.ImageURL = primary
	g.Description = notes

	g.HealthStatus = req.HealthStatus
	if g.HealthStatus == "" {
		g.HealthStatus = defaultHealthStatus
	}

	g.IsAvailable = true
	if req.IsAvailable != nil {
		g.IsAvailable = *req.IsAvailable
	}

	return locs, nil
}

func goatRef(g *model.Goat) queue.GoatRef {
	return queue.GoatRef{ID: g.ID, Name: g.Name}
}
