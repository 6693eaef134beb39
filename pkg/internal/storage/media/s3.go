package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	nlog "github.com/yeisme/goatdesk/pkg/log"
)

// S3API S3Store 使用的 minio 方法子集.
type S3API interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// S3Store 基于 S3/MinIO 的存储，定位符保持 /uploads/... 形式，由服务端代理读取.
type S3Store struct {
	client    S3API
	bucket    string
	keyPrefix string
	prefix    string
	log       zerolog.Logger
}

// NewS3Store 创建 S3 存储.
func NewS3Store(client S3API, bucket, keyPrefix, prefix string) *S3Store {
	kp := strings.Trim(keyPrefix, "/")
	if kp != "" {
		kp += "/"
	}

	return &S3Store{
		client:    client,
		bucket:    bucket,
		keyPrefix: kp,
		prefix:    prefix,
		log:       nlog.Component("media.s3"),
	}
}

// Prefix 返回命名空间前缀.
func (s *S3Store) Prefix() string { return s.prefix }

// Backend 返回后端名称.
func (s *S3Store) Backend() string { return "s3" }

// Ping 检查桶是否存在.
func (s *S3Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("bucket %s not found", s.bucket)
	}

	return nil
}

func (s *S3Store) objectName(rel string) string { return s.keyPrefix + rel }

// Save 上传对象.
func (s *S3Store) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	loc := Locator(s.prefix, key)

	rel, err := Resolve(s.prefix, loc)
	if err != nil {
		return "", err
	}

	if _, err := s.client.PutObject(ctx, s.bucket, s.objectName(rel), r, size,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("put object %s: %w", rel, err)
	}

	return loc, nil
}

// Open 读取对象.
func (s *S3Store) Open(ctx context.Context, locator string) (io.ReadCloser, *FileInfo, error) {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.client.StatObject(ctx, s.bucket, s.objectName(rel), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil, ErrNotExist
		}

		return nil, nil, fmt.Errorf("stat object %s: %w", rel, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(rel), minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object %s: %w", rel, err)
	}

	return obj, &FileInfo{
		Name:        path.Base(rel),
		Locator:     locator,
		Size:        st.Size,
		ModTime:     st.LastModified,
		ContentType: st.ContentType,
	}, nil
}

// Exists 判断对象是否存在.
func (s *S3Store) Exists(ctx context.Context, locator string) bool {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		return false
	}

	_, err = s.client.StatObject(ctx, s.bucket, s.objectName(rel), minio.StatObjectOptions{})

	return err == nil
}

// Delete 删除对象；对象不存在时返回 false.
func (s *S3Store) Delete(ctx context.Context, locator string) bool {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		s.log.Warn().Str("locator", locator).Msg("拒绝删除命名空间外的定位符")
		return false
	}

	name := s.objectName(rel)
	if _, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		if !isNoSuchKey(err) {
			s.log.Error().Err(err).Str("locator", locator).Msg("stat media object failed")
		}

		return false
	}

	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		s.log.Error().Err(err).Str("locator", locator).Msg("delete media object failed")
		return false
	}

	return true
}

// DeleteMany 批量删除.
func (s *S3Store) DeleteMany(ctx context.Context, locators []string) int {
	return deleteMany(ctx, s, locators)
}

// List 列出目录下的对象，不递归.
func (s *S3Store) List(ctx context.Context, dir string) ([]FileInfo, error) {
	p := s.keyPrefix
	if d := strings.Trim(dir, "/"); d != "" {
		p += d + "/"
	}

	out := make([]FileInfo, 0)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: p, Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}

		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, s.keyPrefix)
		out = append(out, FileInfo{
			Name:        path.Base(rel),
			Locator:     Locator(s.prefix, rel),
			Size:        obj.Size,
			ModTime:     obj.LastModified,
			ContentType: obj.ContentType,
		})
	}

	return out, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)

	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
