package service

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid"
	_ "golang.org/x/image/webp" // 注册 webp 解码器

	"github.com/yeisme/goatdesk/pkg/configs"
	"github.com/yeisme/goatdesk/pkg/internal/types"
	nlog "github.com/yeisme/goatdesk/pkg/log"
	"github.com/yeisme/goatdesk/pkg/metrics"
	"github.com/yeisme/goatdesk/pkg/queue"
)

// MediaKind 上传的媒体类别.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// UploadInput 一次上传的输入.
type UploadInput struct {
	Filename    string    // 客户端文件名，仅用于推断扩展名
	ContentType string    // 客户端声明的类型
	Size        int64     // 客户端声明的大小，未知时为 -1
	Reader      io.Reader // 文件内容
}

// UploadResult 上传结果.
type UploadResult struct {
	Locator     string
	Filename    string
	Size        int64
	ContentType string
	Width       int
	Height      int
}

// UploadService 校验并保存上传的图片与视频.
type UploadService struct {
	base
}

// NewUploadService 从 context 获取依赖实例.
func NewUploadService(c context.Context) *UploadService {
	return &UploadService{base: newBase(c)}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(crand.Reader, 0)
)

// newFileID 生成按时间有序的唯一文件名片段.
func newFileID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return strings.ToLower(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Upload 校验类型与大小后写入媒体存储.
//
// 声明类型不在白名单返回 ErrUnsupportedMedia，超过大小上限返回 ErrFileTooLarge.
// 图片还要求嗅探出的真实类型在白名单内并且可以解码.
func (s *UploadService) Upload(ctx context.Context, kind MediaKind, in UploadInput) (*UploadResult, error) {
	r := uploadRule(kind)

	if !r.Allowed(in.ContentType) {
		return nil, fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedMedia, in.ContentType, strings.Join(r.AllowedTypes, ", "))
	}

	limit := r.MaxSizeBytes()
	if in.Size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d MB", ErrFileTooLarge, in.Size, r.MaxSizeMB)
	}

	// 多读一个字节以识别声明大小不实的请求
	data, err := io.ReadAll(io.LimitReader(in.Reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d MB", ErrFileTooLarge, r.MaxSizeMB)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	sniffed := mimetype.Detect(data)
	trusted := r.Allowed(sniffed.String())
	res := &UploadResult{Size: int64(len(data)), ContentType: sniffed.String()}

	if r.Decode {
		if !trusted {
			return nil, fmt.Errorf("%w: content looks like %s", ErrUnsupportedMedia, sniffed.String())
		}

		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: not a decodable image", ErrUnsupportedMedia)
		}

		res.Width = img.Bounds().Dx()
		res.Height = img.Bounds().Dy()
	} else if !trusted {
		// 视频容器的嗅探结果与浏览器声明常不一致，以声明为准
		nlog.Logger().Debug().Str("declared", in.ContentType).Str("sniffed", sniffed.String()).Msg("upload type mismatch")
		res.ContentType = in.ContentType
	}

	res.Filename = r.NamePrefix + newFileID(time.Now()) + extensionFor(sniffed, trusted, in)

	loc, err := s.media.Save(ctx, path.Join(r.Dir, res.Filename), bytes.NewReader(data), res.Size, res.ContentType)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	res.Locator = loc

	metrics.MediaUploaded.WithLabelValues(string(kind)).Inc()
	metrics.MediaUploadedBytes.WithLabelValues(string(kind)).Add(float64(res.Size))

	emit(ctx, s.mqClient, configs.GetConfig().Events.Media.Uploaded, queue.TopicMediaUploaded, queue.PublishMediaUploaded,
		queue.MediaUploadedPayload{
			Media: queue.MediaRef{
				Locator: loc, Kind: string(kind), Size: res.Size, ContentType: res.ContentType,
				Width: res.Width, Height: res.Height,
			},
			OriginalName: in.Filename,
		})

	nlog.Logger().Info().Str("locator", loc).Str("kind", string(kind)).Int64("size", res.Size).Msg("media uploaded")

	return res, nil
}

// ImageResponse 转换为图片上传响应.
func (r *UploadResult) ImageResponse() types.ImageUploadResponse {
	return types.ImageUploadResponse{
		Message:     "File uploaded successfully",
		ImageURL:    r.Locator,
		Filename:    r.Filename,
		Width:       r.Width,
		Height:      r.Height,
		ContentType: r.ContentType,
		Size:        r.Size,
	}
}

// VideoResponse 转换为视频上传响应.
func (r *UploadResult) VideoResponse() types.VideoUploadResponse {
	return types.VideoUploadResponse{
		Message:  "Video uploaded successfully",
		VideoURL: r.Locator,
		Filename: r.Filename,
		Size:     r.Size,
	}
}

func uploadRule(kind MediaKind) configs.UploadRule {
	cfg := mediaConfig()
	if kind == KindVideo {
		return cfg.Video
	}

	return cfg.Image
}

// extensionFor 嗅探结果可信时使用其扩展名，其次是客户端文件名，最后按声明类型推断.
func extensionFor(sniffed *mimetype.MIME, trusted bool, in UploadInput) string {
	if ext := sniffed.Extension(); trusted && ext != "" {
		return ext
	}

	if ext := strings.ToLower(filepath.Ext(in.Filename)); isSafeExt(ext) {
		return ext
	}

	if m := mimetype.Lookup(in.ContentType); m != nil && m.Extension() != "" {
		return m.Extension()
	}

	return ".bin"
}

func isSafeExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}

	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}

	return true
}
