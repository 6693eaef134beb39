// Package service 实现业务逻辑：商品记录生命周期、视频、留言、上传与孤儿文件清理.
//
// service 不处理 HTTP 细节，依赖从 context 中的 storage.Manager 获取.
package service

import (
	"context"

	"github.com/yeisme/goatdesk/pkg/configs"
	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/storage/db"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	"github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	nlog "github.com/yeisme/goatdesk/pkg/log"
)

// base 各 service 共用的依赖.
type base struct {
	dbClient *db.Client
	media    media.Store
	mqClient *mq.Client
}

func newBase(c context.Context) base {
	dbc := ctxPkg.GetDBClient(c)
	store := ctxPkg.GetMediaStore(c)

	// 缺少存储依赖属于启动错误，直接终止
	if dbc == nil || dbc.DB == nil || store == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return base{
		dbClient: dbc,
		media:    store,
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// prefix 返回媒体命名空间前缀.
func (b base) prefix() string {
	return b.media.Prefix()
}

func mediaConfig() configs.MediaConfig {
	return configs.GetConfig().Media
}
