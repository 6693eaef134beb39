package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/goatdesk/pkg/configs"
	ctxPkg "github.com/yeisme/goatdesk/pkg/context"
	"github.com/yeisme/goatdesk/pkg/internal/model"
	"github.com/yeisme/goatdesk/pkg/internal/storage"
	"github.com/yeisme/goatdesk/pkg/internal/storage/db"
	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
	"github.com/yeisme/goatdesk/pkg/internal/storage/mq"
	"github.com/yeisme/goatdesk/pkg/internal/types"
)

// testEnv 单个测试使用的内存数据库与内存文件系统.
type testEnv struct {
	ctx   context.Context
	db    *db.Client
	fs    afero.Fs
	store *media.LocalStore
	mq    *mq.Client
}

func newTestEnv(t *testing.T, mutate ...func(*configs.AppConfig)) *testEnv {
	t.Helper()

	cfg := configs.Default()
	for _, m := range mutate {
		m(&cfg)
	}

	configs.SetConfig(cfg)
	t.Cleanup(func() { configs.SetConfig(configs.Default()) })

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	client := db.Wrap(gdb)
	if err := client.Migrate(context.Background(), model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	fsys := afero.NewMemMapFs()
	store := media.NewLocalStoreFs(fsys, cfg.Media.Prefix())
	mqc := mq.NewMemoryClient()
	t.Cleanup(func() { _ = mqc.Close() })

	mgr := storage.NewManager(client, store, nil, mqc)

	return &testEnv{
		ctx:   ctxPkg.WithStorageManager(context.Background(), mgr),
		db:    client,
		fs:    fsys,
		store: store,
		mq:    mqc,
	}
}

// seed 在命名空间根目录下写入文件.
func (e *testEnv) seed(t *testing.T, names ...string) {
	t.Helper()

	for _, n := range names {
		if err := afero.WriteFile(e.fs, "/"+n, []byte("img-"+n), 0o644); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}
}

func (e *testEnv) exists(name string) bool {
	ok, _ := afero.Exists(e.fs, "/"+name)
	return ok
}

// subscribe 订阅主题，返回读取下一条消息的函数.
func (e *testEnv) subscribe(t *testing.T, topic string) func() *message.Message {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ch, err := e.mq.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("subscribe %s: %v", topic, err)
	}

	return func() *message.Message {
		select {
		case m := <-ch:
			m.Ack()
			return m
		case <-time.After(2 * time.Second):
			t.Fatalf("no message on %s", topic)
			return nil
		}
	}
}

func loc(name string) string { return "/uploads/" + name }

func goatReq(images ...string) *types.GoatRequest {
	return &types.GoatRequest{
		Name:      "Daisy",
		Breed:     "Boer",
		Age:       "2 years",
		Weight:    "45kg",
		Price:     1200,
		Gender:    "Female",
		ImageURLs: images,
	}
}
