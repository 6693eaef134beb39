package configs

import (
	"strings"

	"github.com/spf13/viper"
)

// MediaBackend 媒体文件存储后端.
type MediaBackend string

const (
	MediaBackendLocal MediaBackend = "local"
	MediaBackendS3    MediaBackend = "s3"

	DefaultMediaRoot      = "public/uploads" // 本地上传目录
	DefaultMediaURLPrefix = "/uploads"       // 定位符命名空间前缀
	DefaultImageMaxMB     = 5                // 图片大小上限（MB）
	DefaultVideoMaxMB     = 10               // 视频大小上限（MB）
	DefaultImageNamePre   = "goat-"          // 图片文件名前缀，清理任务只认这个前缀
	DefaultVideoNamePre   = "video-"
	DefaultVideoDir       = "videos"
)

// MediaConfig 上传与媒体文件配置.
type MediaConfig struct {
	Backend   MediaBackend `mapstructure:"backend"    rule:"oneof=local s3"`
	Root      string       `mapstructure:"root"`       // local 后端的根目录
	URLPrefix string       `mapstructure:"url_prefix"` // 定位符前缀，如 /uploads
	Image     UploadRule   `mapstructure:"image"`
	Video     UploadRule   `mapstructure:"video"`
}

// UploadRule 单类媒体的上传规则.
type UploadRule struct {
	MaxSizeMB    int      `mapstructure:"max_size_mb"   rule:"min=1"`
	AllowedTypes []string `mapstructure:"allowed_types"`
	NamePrefix   string   `mapstructure:"name_prefix"`
	Dir          string   `mapstructure:"dir"` // 命名空间下的子目录，空表示根目录
	Decode       bool     `mapstructure:"decode"`
}

// MaxSizeBytes 返回字节数上限.
func (r UploadRule) MaxSizeBytes() int64 {
	return int64(r.MaxSizeMB) << 20
}

// Allowed 判断声明的 MIME 类型是否在白名单内.
func (r UploadRule) Allowed(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	for _, t := range r.AllowedTypes {
		if strings.EqualFold(t, ct) {
			return true
		}
	}

	return false
}

// Prefix 返回以 / 结尾的命名空间前缀，例如 /uploads/.
func (c *MediaConfig) Prefix() string {
	p := "/" + strings.Trim(c.URLPrefix, "/")

	return p + "/"
}

func (c *MediaConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("media.backend", MediaBackendLocal)
	v.SetDefault("media.root", DefaultMediaRoot)
	v.SetDefault("media.url_prefix", DefaultMediaURLPrefix)

	v.SetDefault("media.image.max_size_mb", DefaultImageMaxMB)
	v.SetDefault("media.image.allowed_types", []string{"image/jpeg", "image/jpg", "image/png", "image/webp"})
	v.SetDefault("media.image.name_prefix", DefaultImageNamePre)
	v.SetDefault("media.image.dir", "")
	v.SetDefault("media.image.decode", true)

	v.SetDefault("media.video.max_size_mb", DefaultVideoMaxMB)
	v.SetDefault("media.video.allowed_types", []string{
		"video/mp4", "video/webm", "video/ogg", "video/quicktime", "video/mov", "video/avi", "video/x-msvideo",
	})
	v.SetDefault("media.video.name_prefix", DefaultVideoNamePre)
	v.SetDefault("media.video.dir", DefaultVideoDir)
	v.SetDefault("media.video.decode", false)
}
