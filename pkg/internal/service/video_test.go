package service_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/goatdesk/pkg/internal/service"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

func videoReq(video string, thumb *string) *types.VideoRequest {
	return &types.VideoRequest{Title: "Kids playing", VideoURL: video, ThumbnailURL: thumb}
}

func TestVideoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "videos/video-1.mp4", "videos/video-2.mp4", "goat-thumb.jpg")
	svc := service.NewVideoService(env.ctx)

	v, err := svc.Create(env.ctx, videoReq(loc("videos/video-1.mp4"), lo.ToPtr(loc("goat-thumb.jpg"))))
	require.NoError(t, err)
	assert.True(t, v.IsActive)
	assert.Zero(t, v.Likes)

	// 替换视频文件后旧文件被删除，缩略图保留
	v, err = svc.Update(env.ctx, v.ID, videoReq(loc("videos/video-2.mp4"), lo.ToPtr(loc("goat-thumb.jpg"))))
	require.NoError(t, err)
	assert.Equal(t, loc("videos/video-2.mp4"), v.VideoURL)
	assert.False(t, env.exists("videos/video-1.mp4"))
	assert.True(t, env.exists("goat-thumb.jpg"))

	deleted, err := svc.Delete(env.ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.False(t, env.exists("videos/video-2.mp4"))
	assert.False(t, env.exists("goat-thumb.jpg"))

	_, err = svc.Delete(env.ctx, v.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestVideoCreate_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := service.NewVideoService(env.ctx).Create(env.ctx, videoReq(" ", nil))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestVideoLike(t *testing.T) {
	env := newTestEnv(t)
	svc := service.NewVideoService(env.ctx)

	v, err := svc.Create(env.ctx, videoReq("https://example.com/v.mp4", nil))
	require.NoError(t, err)

	for range 3 {
		v, err = svc.Like(env.ctx, v.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, v.Likes)

	_, err = svc.Like(env.ctx, v.ID+100)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestVideoList_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := service.NewVideoService(env.ctx)

	first, err := svc.Create(env.ctx, videoReq("https://example.com/1.mp4", nil))
	require.NoError(t, err)

	second, err := svc.Create(env.ctx, videoReq("https://example.com/2.mp4", nil))
	require.NoError(t, err)

	videos, err := svc.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, second.ID, videos[0].ID)
	assert.Equal(t, first.ID, videos[1].ID)
}
