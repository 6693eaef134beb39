// Package media 管理上传命名空间内的媒体文件.
//
// 定位符形如 /uploads/goat-01hx....jpg，去掉前缀后的相对路径即为后端中的键.
// 删除只接受命名空间内的定位符，任何试图越出命名空间的路径都被拒绝.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/yeisme/goatdesk/pkg/configs"
)

// ErrOutsideNamespace 定位符不在命名空间内或包含越界路径.
var ErrOutsideNamespace = errors.New("locator outside upload namespace")

// ErrNotExist 文件不存在.
var ErrNotExist = errors.New("media file does not exist")

// FileInfo 媒体文件元信息.
type FileInfo struct {
	Name        string    `json:"name"`
	Locator     string    `json:"locator"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	ContentType string    `json:"content_type,omitempty"`
}

// Store 媒体文件存储适配器.
//
// Exists/Delete 不返回错误：越界定位符与不存在的文件都视为 false，
// 底层错误只记录日志，调用方据此决定是否继续.
type Store interface {
	// Save 写入文件，key 为命名空间内的相对路径，返回定位符.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Open 打开文件用于读取.
	Open(ctx context.Context, locator string) (io.ReadCloser, *FileInfo, error)
	// Exists 判断文件是否存在.
	Exists(ctx context.Context, locator string) bool
	// Delete 删除文件，仅在确实删除时返回 true.
	Delete(ctx context.Context, locator string) bool
	// DeleteMany 逐个删除，单个失败不影响其余，返回确认删除的数量.
	DeleteMany(ctx context.Context, locators []string) int
	// List 列出 dir（相对命名空间，空为根）下的文件，不递归.
	List(ctx context.Context, dir string) ([]FileInfo, error)
	// Prefix 返回以 / 结尾的命名空间前缀.
	Prefix() string
	// Backend 返回后端名称.
	Backend() string
	// Ping 探测后端可用性.
	Ping(ctx context.Context) error
}

// Resolve 把定位符转换为命名空间内的相对键.
func Resolve(prefix, locator string) (string, error) {
	if !strings.HasPrefix(locator, prefix) {
		return "", ErrOutsideNamespace
	}

	rel := strings.TrimPrefix(locator, prefix)
	if rel == "" || strings.ContainsAny(rel, "\\\x00") {
		return "", ErrOutsideNamespace
	}

	cleaned := path.Clean(rel)
	if cleaned != rel || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return "", ErrOutsideNamespace
	}

	return cleaned, nil
}

// Locator 由相对键构造定位符.
func Locator(prefix, key string) string {
	return prefix + strings.TrimPrefix(key, "/")
}

// New 按配置创建存储适配器.
func New(cfg *configs.MediaConfig, s3 S3API, s3cfg *configs.S3Config) (Store, error) {
	switch cfg.Backend {
	case configs.MediaBackendLocal, "":
		return NewLocalStore(cfg.Root, cfg.Prefix())
	case configs.MediaBackendS3:
		if s3 == nil {
			return nil, fmt.Errorf("media backend s3 requires an s3 client")
		}

		return NewS3Store(s3, s3cfg.BucketName, s3cfg.KeyPrefix, cfg.Prefix()), nil
	default:
		return nil, fmt.Errorf("unsupported media backend: %s", cfg.Backend)
	}
}

// deleteMany 通用批量删除.
func deleteMany(ctx context.Context, s Store, locators []string) int {
	n := 0

	for _, l := range locators {
		if ctx.Err() != nil {
			break
		}

		if s.Delete(ctx, l) {
			n++
		}
	}

	return n
}
