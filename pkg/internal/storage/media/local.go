package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	nlog "github.com/yeisme/goatdesk/pkg/log"
)

// LocalStore 基于本地目录的存储，文件系统通过 afero 抽象.
type LocalStore struct {
	fs     afero.Fs
	prefix string
	root   string
	log    zerolog.Logger
}

// NewLocalStore 以 root 为根目录创建存储，目录不存在时创建.
func NewLocalStore(root, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}

	s := NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), root), prefix)
	s.root = root

	return s, nil
}

// NewLocalStoreFs 使用给定文件系统创建存储，测试中配合 afero.NewMemMapFs 使用.
func NewLocalStoreFs(fsys afero.Fs, prefix string) *LocalStore {
	return &LocalStore{
		fs:     fsys,
		prefix: prefix,
		log:    nlog.Component("media.local"),
	}
}

// Fs 返回底层文件系统.
func (s *LocalStore) Fs() afero.Fs { return s.fs }

// Prefix 返回命名空间前缀.
func (s *LocalStore) Prefix() string { return s.prefix }

// Backend 返回后端名称.
func (s *LocalStore) Backend() string { return "local" }

// Ping 检查根目录可访问.
func (s *LocalStore) Ping(_ context.Context) error {
	_, err := s.fs.Stat("/")
	return err
}

// Save 先写临时文件再重命名，避免读到半截文件.
func (s *LocalStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	loc := Locator(s.prefix, key)

	rel, err := Resolve(s.prefix, loc)
	if err != nil {
		return "", err
	}

	name := "/" + rel
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", rel, err)
	}

	tmp := name + ".part"
	if err := afero.WriteReader(s.fs, tmp, r); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", rel, err)
	}

	if err := s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", rel, err)
	}

	return loc, nil
}

// Open 打开文件.
func (s *LocalStore) Open(_ context.Context, locator string) (io.ReadCloser, *FileInfo, error) {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.fs.Stat("/" + rel)
	if err != nil || st.IsDir() {
		return nil, nil, ErrNotExist
	}

	f, err := s.fs.Open("/" + rel)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", rel, err)
	}

	info := &FileInfo{Name: st.Name(), Locator: locator, Size: st.Size(), ModTime: st.ModTime()}
	if mt, derr := mimetype.DetectReader(f); derr == nil {
		info.ContentType = mt.String()
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("seek %s: %w", rel, err)
	}

	return f, info, nil
}

// Exists 判断文件是否存在.
func (s *LocalStore) Exists(_ context.Context, locator string) bool {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		return false
	}

	st, err := s.fs.Stat("/" + rel)

	return err == nil && !st.IsDir()
}

// Delete 删除文件.
func (s *LocalStore) Delete(_ context.Context, locator string) bool {
	rel, err := Resolve(s.prefix, locator)
	if err != nil {
		s.log.Warn().Str("locator", locator).Msg("拒绝删除命名空间外的定位符")
		return false
	}

	st, err := s.fs.Stat("/" + rel)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Error().Err(err).Str("locator", locator).Msg("stat media file failed")
		}

		return false
	}

	if st.IsDir() {
		return false
	}

	if err := s.fs.Remove("/" + rel); err != nil {
		s.log.Error().Err(err).Str("locator", locator).Msg("delete media file failed")
		return false
	}

	s.log.Debug().Str("locator", locator).Msg("media file deleted")

	return true
}

// DeleteMany 批量删除.
func (s *LocalStore) DeleteMany(ctx context.Context, locators []string) int {
	return deleteMany(ctx, s, locators)
}

// List 列出目录下的文件.
func (s *LocalStore) List(_ context.Context, dir string) ([]FileInfo, error) {
	name := path.Join("/", dir)

	entries, err := afero.ReadDir(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read dir %s: %w", name, err)
	}

	out := make([]FileInfo, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		key := path.Join(dir, e.Name())
		out = append(out, FileInfo{
			Name:    e.Name(),
			Locator: Locator(s.prefix, key),
			Size:    e.Size(),
			ModTime: e.ModTime(),
		})
	}

	return out, nil
}
