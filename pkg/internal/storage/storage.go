// Package storage 聚合数据库、对象存储、键值存储、消息队列与媒体文件存储.
//
// Example:
//
// 初始化
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// 处理错误
//	}
//	defer mgr.Close()
//
// 获取存储客户端
//
//	dbClient := mgr.GetDBClient()
//	media := mgr.GetMediaStore()
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yeisme/goatdesk/pkg/configs"
	dbc "github.com/yeisme/goatdesk/pkg/internal/storage/db"
	kvc "github.com/yeisme/goatdesk/pkg/internal/storage/kv"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	mqc "github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	s3c "github.com/yeisme/goatdesk/pkg/internal/storage/s3"
	nlog "github.com/yeisme/goatdesk/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB    *dbc.Client
	S3    *s3c.Client // 仅 media.backend=s3 时初始化
	KV    *kvc.Client
	MQ    *mqc.Client // 仅 mq.enabled 时初始化
	Media media.Store
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	mgrOnce.Do(func() {
		mgr, mgrErr = build(ctx, configs.GetConfig())
		if mgrErr == nil {
			nlog.Logger().Info().
				Str("media_backend", mgr.Media.Backend()).
				Bool("mq", mgr.MQ != nil).
				Msg("storage manager initialized")
		}
	})

	return mgr, mgrErr
}

func build(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	dbi, err := dbc.New(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}

	m.DB = dbi

	var s3api media.S3API

	if cfg.Media.Backend == configs.MediaBackendS3 {
		s3i, err := s3c.New(ctx, &cfg.S3)
		if err != nil {
			return nil, err
		}

		m.S3 = s3i
		s3api = s3i
	}

	store, err := media.New(&cfg.Media, s3api, &cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("init media store: %w", err)
	}

	m.Media = store

	kvi, err := kvc.NewKVClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("init kv: %w", err)
	}

	m.KV = kvi

	if cfg.MQ.Enabled {
		mqi, err := mqc.New(ctx)
		if err != nil {
			return nil, err
		}

		m.MQ = mqi
	}

	return m, nil
}

// NewManager 由已构造的组件组装 Manager，测试与离线命令中使用.
func NewManager(db *dbc.Client, store media.Store, kv *kvc.Client, mq *mqc.Client) *Manager {
	return &Manager{DB: db, Media: store, KV: kv, MQ: mq}
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端，未启用时为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetMediaStore 获取媒体文件存储.
func (m *Manager) GetMediaStore() media.Store {
	return m.Media
}

// Close 释放所有连接.
func (m *Manager) Close() error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}

	return errors.Join(errs...)
}
